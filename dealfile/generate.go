// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package dealfile

import (
	"fmt"
	"math/rand"

	"github.com/jmisiaszek/sik-2/kierki"
)

// Deck returns the 52 cards of a standard deck, suits in C, D, H, S order
// and ranks ascending within each suit.
func Deck() []kierki.Card {
	deck := make([]kierki.Card, 0, 52)
	for _, suit := range kierki.Suits {
		for rank := kierki.Two; rank <= kierki.Ace; rank++ {
			deck = append(deck, kierki.Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}

// Generate produces n random deals drawing types from the given set. The
// rng makes output reproducible under a fixed seed.
func Generate(rng *rand.Rand, n int, types []kierki.DealType) ([]kierki.DealSpec, error) {
	if n <= 0 {
		return nil, fmt.Errorf("deal count %d must be positive", n)
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("no deal types to draw from")
	}
	deals := make([]kierki.DealSpec, 0, n)
	for i := 0; i < n; i++ {
		deck := Deck()
		rng.Shuffle(len(deck), func(a, b int) {
			deck[a], deck[b] = deck[b], deck[a]
		})
		spec := kierki.DealSpec{
			Type:   types[rng.Intn(len(types))],
			Leader: kierki.Seats[rng.Intn(len(kierki.Seats))],
		}
		for _, seat := range kierki.Seats {
			spec.Hands[seat] = deck[:kierki.HandSize]
			deck = deck[kierki.HandSize:]
		}
		deals = append(deals, spec)
	}
	return deals, nil
}
