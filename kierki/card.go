// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package kierki holds the domain model of the card tournament: cards,
// seats, deal descriptors, per-deal hand state and the scoring rules.
// Everything that touches the wire or a script file converts through the
// canonical text forms defined here.
package kierki

import (
	"fmt"
	"strings"
)

// Rank orders card values 2 < 3 < ... < 10 < J < Q < K < A. The zero value
// is invalid so uninitialized cards are detectable.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const (
	minRank = Two
	maxRank = Ace
)

// String returns the text form of the rank; ten is the two characters "10".
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Nine:
		return string(rune('0' + r))
	case r == Ten:
		return "10"
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	}
	return fmt.Sprintf("Rank(%d)", int(r))
}

// Suit is one of clubs, diamonds, hearts, spades.
type Suit int

const (
	Clubs Suit = iota + 1
	Diamonds
	Hearts
	Spades
)

// Suits lists all suits in their text-encoding order C, D, H, S.
var Suits = [4]Suit{Clubs, Diamonds, Hearts, Spades}

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	case Hearts:
		return "H"
	case Spades:
		return "S"
	}
	return fmt.Sprintf("Suit(%d)", int(s))
}

// Card is a rank and suit pair. Cards are compared by rank only; suits have
// no trump ordering in this game.
type Card struct {
	Rank Rank
	Suit Suit
}

// String returns the card's text form, rank then suit, e.g. "10H" or "QS".
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Valid reports whether both fields hold defined values.
func (c Card) Valid() bool {
	return c.Rank >= minRank && c.Rank <= maxRank && c.Suit >= Clubs && c.Suit <= Spades
}

// Beats reports whether c wins over other given the trick's lead suit.
// A card off the lead suit never wins.
func (c Card) Beats(other Card, lead Suit) bool {
	if c.Suit != lead {
		return false
	}
	if other.Suit != lead {
		return true
	}
	return c.Rank > other.Rank
}

// ScanCard decodes one card from the front of s and returns it together
// with the number of bytes consumed. The rank character '1' must be
// followed by '0'; "10" is the only multi-character rank.
func ScanCard(s string) (Card, int, error) {
	if len(s) < 2 {
		return Card{}, 0, fmt.Errorf("truncated card %q", s)
	}
	var c Card
	n := 1
	switch ch := s[0]; {
	case ch >= '2' && ch <= '9':
		c.Rank = Rank(ch - '0')
	case ch == '1':
		if len(s) < 3 || s[1] != '0' {
			return Card{}, 0, fmt.Errorf("bad rank in %q: '1' not followed by '0'", s)
		}
		c.Rank = Ten
		n = 2
	case ch == 'J':
		c.Rank = Jack
	case ch == 'Q':
		c.Rank = Queen
	case ch == 'K':
		c.Rank = King
	case ch == 'A':
		c.Rank = Ace
	default:
		return Card{}, 0, fmt.Errorf("bad rank character %q", ch)
	}
	switch s[n] {
	case 'C':
		c.Suit = Clubs
	case 'D':
		c.Suit = Diamonds
	case 'H':
		c.Suit = Hearts
	case 'S':
		c.Suit = Spades
	default:
		return Card{}, 0, fmt.Errorf("bad suit character %q", s[n])
	}
	return c, n + 1, nil
}

// ParseCard decodes a card that must occupy the whole of s.
func ParseCard(s string) (Card, error) {
	c, n, err := ScanCard(s)
	if err != nil {
		return Card{}, err
	}
	if n != len(s) {
		return Card{}, fmt.Errorf("trailing bytes after card in %q", s)
	}
	return c, nil
}

// ParseCards decodes a contiguous run of cards occupying the whole of s.
func ParseCards(s string) ([]Card, error) {
	var cards []Card
	for len(s) > 0 {
		c, n, err := ScanCard(s)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
		s = s[n:]
	}
	return cards, nil
}

// FormatCards concatenates the text forms of the given cards with no
// separator, the layout used on the wire and in script files.
func FormatCards(cards []Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.String())
	}
	return b.String()
}
