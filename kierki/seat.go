// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package kierki

import "fmt"

// Seat identifies one of the four table positions. Values double as array
// indexes, so the zero value is North rather than an invalid sentinel;
// parsing rejects anything outside the four letters.
type Seat int

const (
	North Seat = iota
	East
	South
	West
)

// Seats lists the table positions in the fixed emission order used wherever
// a seat list or seat-keyed tuple is rendered.
var Seats = [4]Seat{North, East, South, West}

func (s Seat) String() string {
	switch s {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	}
	return fmt.Sprintf("Seat(%d)", int(s))
}

// Next returns the clockwise successor: N, E, S, W, N.
func (s Seat) Next() Seat {
	return (s + 1) % 4
}

// ParseSeat decodes a single seat letter.
func ParseSeat(b byte) (Seat, error) {
	switch b {
	case 'N':
		return North, nil
	case 'E':
		return East, nil
	case 'S':
		return South, nil
	case 'W':
		return West, nil
	}
	return 0, fmt.Errorf("bad seat character %q", b)
}
