// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package wire frames and parses the protocol spoken between the server
// and its clients: CRLF-terminated ASCII messages with fixed keyword
// prefixes. The grammar is strict; any deviation is a parse error, never a
// panic.
package wire

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// MaxFrame caps a single message at 1024 bytes including the CRLF
// terminator. A line that grows past the cap without terminating is a
// framing error.
const MaxFrame = 1024

// ErrFrameTooLong reports a line exceeding MaxFrame without a terminator.
var ErrFrameTooLong = errors.New("frame exceeds 1024 bytes without CRLF")

// FrameReader splits a byte stream into CRLF-terminated frames. It reads
// iteratively and never recurses, regardless of how malformed the input is.
type FrameReader struct {
	r   io.Reader
	buf []byte
	err error
}

func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{r: r}
}

// ReadFrame returns the next frame without its CRLF terminator. It returns
// io.EOF when the stream ends cleanly between frames, and
// io.ErrUnexpectedEOF when it ends mid-frame.
func (fr *FrameReader) ReadFrame() (string, error) {
	for {
		if i := bytes.Index(fr.buf, []byte("\r\n")); i >= 0 {
			if i+2 > MaxFrame {
				return "", ErrFrameTooLong
			}
			line := string(fr.buf[:i])
			fr.buf = fr.buf[i+2:]
			return line, nil
		}
		if len(fr.buf) >= MaxFrame {
			return "", ErrFrameTooLong
		}
		if fr.err != nil {
			if len(fr.buf) == 0 && fr.err == io.EOF {
				return "", io.EOF
			}
			if fr.err == io.EOF {
				return "", io.ErrUnexpectedEOF
			}
			return "", fr.err
		}
		chunk := make([]byte, 512)
		n, err := fr.r.Read(chunk)
		fr.buf = append(fr.buf, chunk[:n]...)
		if err != nil {
			// Defer reporting until the buffered bytes are exhausted.
			fr.err = err
		}
	}
}

// ReadMessage reads one frame and parses it.
func (fr *FrameReader) ReadMessage() (Message, error) {
	line, err := fr.ReadFrame()
	if err != nil {
		return nil, err
	}
	m, err := Parse(line)
	if err != nil {
		return nil, fmt.Errorf("bad message %q: %w", line, err)
	}
	return m, nil
}
