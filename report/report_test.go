// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package report

import (
	"bytes"
	"context"
	"net"
	"testing"

	"github.com/jmisiaszek/sik-2/lib/clock"
)

func TestRecord(t *testing.T) {
	fake := clock.NewFakeClock()
	ctx := clock.NewContext(context.Background(), fake)

	src := &net.TCPAddr{IP: net.ParseIP("192.0.2.1"), Port: 1234}
	dst := &net.TCPAddr{IP: net.ParseIP("192.0.2.7"), Port: 42000}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Record(ctx, src, dst, []byte("TRICK12C\r\n"))

	stamp := fake.Now().Format("2006-01-02T15:04:05.000")
	want := "[192.0.2.1:1234,192.0.2.7:42000," + stamp + "] TRICK12C\\r\\n\n"
	if got := buf.String(); got != want {
		t.Errorf("Record wrote %q, want %q", got, want)
	}
}

func TestRecordStripsTerminator(t *testing.T) {
	fake := clock.NewFakeClock()
	ctx := clock.NewContext(context.Background(), fake)
	var buf bytes.Buffer
	w := NewWriter(&buf)

	src := &net.TCPAddr{IP: net.ParseIP("::1"), Port: 1}
	dst := &net.TCPAddr{IP: net.ParseIP("::1"), Port: 2}
	w.Record(ctx, src, dst, []byte("IAMN"))
	w.Record(ctx, src, dst, []byte("IAME\r\n"))

	lines := bytes.Split(bytes.TrimSuffix(buf.Bytes(), []byte("\n")), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("wrote %d lines, want 2", len(lines))
	}
	for i, want := range []string{"IAMN\\r\\n", "IAME\\r\\n"} {
		if !bytes.HasSuffix(lines[i], []byte(want)) {
			t.Errorf("line %d = %q, want suffix %q", i+1, lines[i], want)
		}
	}
}

func TestNilWriterIsSafe(t *testing.T) {
	var w *Writer
	w.Record(context.Background(), &net.TCPAddr{}, &net.TCPAddr{}, []byte("IAMN\r\n"))
}
