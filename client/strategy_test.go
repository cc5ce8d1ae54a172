// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package client

import (
	"errors"
	"testing"

	"github.com/jmisiaszek/sik-2/kierki"
)

func mustCards(t *testing.T, strs ...string) []kierki.Card {
	t.Helper()
	var out []kierki.Card
	for _, s := range strs {
		c, err := kierki.ParseCard(s)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, c)
	}
	return out
}

func TestChooseCard(t *testing.T) {
	for _, tc := range []struct {
		name     string
		hand     []string
		plays    []string
		rejected []string
		want     string
	}{
		{
			name: "leading plays the lowest card",
			hand: []string{"AH", "2C", "KS", "3C"},
			want: "2C",
		},
		{
			name:  "beats the current high as cheaply as possible",
			hand:  []string{"2H", "9H", "QH", "AH"},
			plays: []string{"7H", "8H"},
			want:  "9H",
		},
		{
			name:  "cannot win so sheds the lowest of the suit",
			hand:  []string{"2H", "5H", "AS"},
			plays: []string{"KH"},
			want:  "2H",
		},
		{
			name:  "void in lead suit sheds the highest card",
			hand:  []string{"2C", "AS", "KD"},
			plays: []string{"7H", "8H"},
			want:  "AS",
		},
		{
			name:  "off-suit cards do not raise the high",
			hand:  []string{"8H", "AH"},
			plays: []string{"7H", "AS"},
			want:  "8H",
		},
		{
			name:     "rejected card is excluded",
			hand:     []string{"2H", "5H"},
			plays:    []string{"KH"},
			rejected: []string{"2H"},
			want:     "5H",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rejected := make(map[kierki.Card]bool)
			for _, c := range mustCards(t, tc.rejected...) {
				rejected[c] = true
			}
			got, err := ChooseCard(mustCards(t, tc.hand...), mustCards(t, tc.plays...), rejected)
			if err != nil {
				t.Fatal(err)
			}
			if got.String() != tc.want {
				t.Errorf("ChooseCard = %v, want %s", got, tc.want)
			}
		})
	}
}

func TestChooseCardExhausted(t *testing.T) {
	hand := mustCards(t, "2H", "5H")
	rejected := map[kierki.Card]bool{
		{Rank: kierki.Two, Suit: kierki.Hearts}:  true,
		{Rank: kierki.Five, Suit: kierki.Hearts}: true,
	}
	if _, err := ChooseCard(hand, mustCards(t, "KH"), rejected); !errors.Is(err, ErrNoPlayableCard) {
		t.Errorf("got %v, want ErrNoPlayableCard", err)
	}
}
