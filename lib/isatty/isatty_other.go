// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

//go:build !linux

package isatty

// IsTerminal reports whether stdout is attached to a terminal. Only
// implemented for Linux hosts; everywhere else color stays off.
func IsTerminal() bool {
	return false
}
