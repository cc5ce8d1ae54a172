// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package kierki

import "fmt"

// DealType selects which of the seven scoring rules governs a deal.
type DealType int

const (
	// TypeTricks awards 1 point per trick taken.
	TypeTricks DealType = iota + 1
	// TypeHearts awards 1 point per heart taken.
	TypeHearts
	// TypeQueens awards 5 points per queen taken.
	TypeQueens
	// TypeGentlemen awards 2 points per jack or king taken.
	TypeGentlemen
	// TypeKingOfHearts awards 18 points for taking the king of hearts.
	TypeKingOfHearts
	// TypeSeventhLast awards 10 points each for the 7th and 13th tricks.
	TypeSeventhLast
	// TypeRobber applies every rule above at once.
	TypeRobber
)

func (t DealType) String() string {
	return fmt.Sprintf("%d", int(t))
}

// ParseDealType decodes a deal type digit '1'..'7'.
func ParseDealType(b byte) (DealType, error) {
	if b < '1' || b > '7' {
		return 0, fmt.Errorf("bad deal type character %q", b)
	}
	return DealType(b - '0'), nil
}

// HandSize is the number of cards dealt to each seat.
const HandSize = 13

// DealSpec is one scripted deal: the scoring type, the seat that leads the
// first trick, and the four hands in the order they were listed.
type DealSpec struct {
	Type   DealType
	Leader Seat
	Hands  [4][]Card
}

// Validate checks that each hand holds exactly 13 cards and that the four
// hands together partition a standard 52-card deck.
func (d DealSpec) Validate() error {
	if d.Type < TypeTricks || d.Type > TypeRobber {
		return fmt.Errorf("bad deal type %d", int(d.Type))
	}
	seen := make(map[Card]Seat, 52)
	for _, seat := range Seats {
		hand := d.Hands[seat]
		if len(hand) != HandSize {
			return fmt.Errorf("seat %v holds %d cards, want %d", seat, len(hand), HandSize)
		}
		for _, c := range hand {
			if !c.Valid() {
				return fmt.Errorf("seat %v holds invalid card %+v", seat, c)
			}
			if prev, ok := seen[c]; ok {
				return fmt.Errorf("card %v dealt to both %v and %v", c, prev, seat)
			}
			seen[c] = seat
		}
	}
	// 4 hands x 13 distinct valid cards is necessarily the full deck.
	return nil
}
