// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package server

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/jmisiaszek/sik-2/wire"
)

// inbound is one framed message (or terminal error) delivered by a
// connection's reader to the session loop.
type inbound struct {
	frame string
	msg   wire.Message
	err   error
}

// conn pairs a socket with its reader goroutine. The reader does framing
// and parsing only; every decision about the message belongs to the
// session loop. The hand-off channel is unbuffered, so a connection the
// loop is not currently selecting on is held back mid-delivery.
type conn struct {
	nc         net.Conn
	in         chan inbound
	done       chan struct{}
	closeOnce  sync.Once
	closeErr   error
	acceptedAt time.Time
}

func newConn(nc net.Conn, acceptedAt time.Time) *conn {
	c := &conn{
		nc:         nc,
		in:         make(chan inbound),
		done:       make(chan struct{}),
		acceptedAt: acceptedAt,
	}
	go c.readLoop()
	return c
}

func (c *conn) readLoop() {
	fr := wire.NewFrameReader(c.nc)
	for {
		line, err := fr.ReadFrame()
		if err != nil {
			c.deliver(inbound{err: err})
			return
		}
		msg, err := wire.Parse(line)
		if err != nil {
			c.deliver(inbound{err: fmt.Errorf("bad message %q: %w", line, err)})
			return
		}
		if !c.deliver(inbound{frame: line, msg: msg}) {
			return
		}
	}
}

func (c *conn) deliver(in inbound) bool {
	select {
	case c.in <- in:
		return true
	case <-c.done:
		return false
	}
}

// close shuts the socket and releases the reader. Safe to call more than
// once.
func (c *conn) close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		c.closeErr = c.nc.Close()
	})
	return c.closeErr
}

// inChan returns the connection's delivery channel, or nil for a nil
// connection so vacant slots select on nothing.
func (c *conn) inChan() chan inbound {
	if c == nil {
		return nil
	}
	return c.in
}
