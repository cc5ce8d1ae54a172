// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jmisiaszek/sik-2/lib/color"
)

func TestWithContext(t *testing.T) {
	logger := NewLogger(DebugLevel, color.NewColor(color.ColorNever), nil, nil, "")
	ctx := context.Background()
	if v := LoggerFromContext(ctx); v != nil {
		t.Fatalf("default context should carry no logger, got %+v", v)
	}
	ctx = WithLogger(ctx, logger)
	if v := LoggerFromContext(ctx); v != logger {
		t.Fatalf("updated context should carry the installed logger, got %+v", v)
	}
}

func TestLevelFilter(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewLogger(InfoLevel, color.NewColor(color.ColorNever), &out, &errOut, "kierki ")

	logger.Debugf("hidden %d", 1)
	logger.Infof("shown %d", 2)
	logger.Errorf("failed %d", 3)

	if strings.Contains(out.String(), "hidden") {
		t.Errorf("debug line emitted below threshold: %q", out.String())
	}
	if !strings.Contains(out.String(), "kierki shown 2") {
		t.Errorf("info line missing or missing prefix: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "ERROR: failed 3") {
		t.Errorf("error line missing from error writer: %q", errOut.String())
	}
	if strings.Contains(out.String(), "failed") {
		t.Errorf("error line leaked to the non-error writer: %q", out.String())
	}
}

func TestLogLevelFlagValue(t *testing.T) {
	var level LogLevel
	if err := level.Set("debug"); err != nil {
		t.Fatalf("Set(debug) failed: %v", err)
	}
	if level != DebugLevel {
		t.Fatalf("Set(debug) = %v, want %v", level, DebugLevel)
	}
	if err := level.Set("loud"); err == nil {
		t.Fatalf("Set(loud) should fail")
	}
	if got := level.String(); got != "debug" {
		t.Fatalf("String() = %q, want %q", got, "debug")
	}
}
