// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package server

import "github.com/jmisiaszek/sik-2/kierki"

// seatTable maps each of the four seats to its connection, if any. It is
// owned by the session loop.
type seatTable struct {
	conns [4]*conn
}

func (t *seatTable) get(s kierki.Seat) *conn {
	return t.conns[s]
}

func (t *seatTable) set(s kierki.Seat, c *conn) {
	t.conns[s] = c
}

// occupied lists the occupied seats in the fixed N, E, S, W order, the
// order the BUSY reply renders them in.
func (t *seatTable) occupied() []kierki.Seat {
	var seats []kierki.Seat
	for _, s := range kierki.Seats {
		if t.conns[s] != nil {
			seats = append(seats, s)
		}
	}
	return seats
}

func (t *seatTable) allSeated() bool {
	for _, c := range t.conns {
		if c == nil {
			return false
		}
	}
	return true
}
