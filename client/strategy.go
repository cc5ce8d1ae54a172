// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package client implements the player endpoint: the session loop that
// multiplexes the server socket with the terminal, the automatic playing
// strategy, and the interactive console rendering.
package client

import (
	"errors"

	"github.com/jmisiaszek/sik-2/kierki"
)

// ErrNoPlayableCard reports that every candidate card has been rejected
// by the server. It ends the session rather than looping on WRONG.
var ErrNoPlayableCard = errors.New("no playable card left")

// ChooseCard picks the automatic player's card. plays holds the cards
// already laid in the trick, in play order; rejected holds cards the
// server has answered WRONG to this trick.
//
// The policy respects follow-suit first. Leading, it plays the lowest
// card in hand. Following in suit, it plays the lowest card that beats
// the trick's current high, or the lowest card of the suit when it
// cannot win. Void in the lead suit, it sheds the highest card in hand.
func ChooseCard(hand []kierki.Card, plays []kierki.Card, rejected map[kierki.Card]bool) (kierki.Card, error) {
	candidates := make([]kierki.Card, 0, len(hand))
	for _, c := range hand {
		if !rejected[c] {
			candidates = append(candidates, c)
		}
	}
	if len(plays) == 0 {
		return lowest(candidates)
	}

	lead := plays[0].Suit
	var inSuit []kierki.Card
	for _, c := range candidates {
		if c.Suit == lead {
			inSuit = append(inSuit, c)
		}
	}
	if len(inSuit) == 0 {
		if holdsSuit(hand, lead) {
			// Every lead-suit card was rejected; nothing legal remains.
			return kierki.Card{}, ErrNoPlayableCard
		}
		return highest(candidates)
	}

	high := plays[0].Rank
	for _, c := range plays[1:] {
		if c.Suit == lead && c.Rank > high {
			high = c.Rank
		}
	}
	var beating []kierki.Card
	for _, c := range inSuit {
		if c.Rank > high {
			beating = append(beating, c)
		}
	}
	if len(beating) > 0 {
		return lowest(beating)
	}
	return lowest(inSuit)
}

func holdsSuit(hand []kierki.Card, suit kierki.Suit) bool {
	for _, c := range hand {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

// below orders cards by rank, breaking ties in suit order, so choices are
// deterministic.
func below(a, b kierki.Card) bool {
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	return a.Suit < b.Suit
}

func lowest(cards []kierki.Card) (kierki.Card, error) {
	if len(cards) == 0 {
		return kierki.Card{}, ErrNoPlayableCard
	}
	best := cards[0]
	for _, c := range cards[1:] {
		if below(c, best) {
			best = c
		}
	}
	return best, nil
}

func highest(cards []kierki.Card) (kierki.Card, error) {
	if len(cards) == 0 {
		return kierki.Card{}, ErrNoPlayableCard
	}
	best := cards[0]
	for _, c := range cards[1:] {
		if below(best, c) {
			best = c
		}
	}
	return best, nil
}
