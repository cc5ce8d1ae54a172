// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package report writes the traffic report both endpoints produce: one
// stdout line per protocol message exchanged, tagged with the two socket
// addresses and a millisecond timestamp.
package report

import (
	"context"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/jmisiaszek/sik-2/lib/clock"
)

const stampLayout = "2006-01-02T15:04:05.000"

// Writer records exchanged frames. It is safe for concurrent use so the
// per-connection readers and the session loop can share one instance.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Record logs one frame sent from src to dst. The frame is reported
// without its CRLF terminator, and the line ends with the two literal
// characters backslash-r backslash-n before the newline. Timestamps come
// from the context clock so tests can pin them.
func (r *Writer) Record(ctx context.Context, src, dst net.Addr, frame []byte) {
	if r == nil {
		return
	}
	for len(frame) > 0 && (frame[len(frame)-1] == '\n' || frame[len(frame)-1] == '\r') {
		frame = frame[:len(frame)-1]
	}
	stamp := clock.Now(ctx).Format(stampLayout)
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, "[%s,%s,%s] %s\\r\\n\n", src, dst, stamp, frame)
}
