// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package kierki

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCardString(t *testing.T) {
	for _, tc := range []struct {
		card Card
		want string
	}{
		{Card{Two, Clubs}, "2C"},
		{Card{Nine, Diamonds}, "9D"},
		{Card{Ten, Hearts}, "10H"},
		{Card{Jack, Spades}, "JS"},
		{Card{Queen, Clubs}, "QC"},
		{Card{King, Hearts}, "KH"},
		{Card{Ace, Spades}, "AS"},
	} {
		if got := tc.card.String(); got != tc.want {
			t.Errorf("%+v.String() = %q, want %q", tc.card, got, tc.want)
		}
	}
}

func TestScanCard(t *testing.T) {
	for _, tc := range []struct {
		in       string
		want     Card
		wantRead int
	}{
		{"2C", Card{Two, Clubs}, 2},
		{"10H", Card{Ten, Hearts}, 3},
		{"AS", Card{Ace, Spades}, 2},
		{"QD5H", Card{Queen, Diamonds}, 2},
		{"10S10C", Card{Ten, Spades}, 3},
	} {
		got, n, err := ScanCard(tc.in)
		if err != nil {
			t.Errorf("ScanCard(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want || n != tc.wantRead {
			t.Errorf("ScanCard(%q) = %v, %d; want %v, %d", tc.in, got, n, tc.want, tc.wantRead)
		}
	}
}

func TestScanCardRejects(t *testing.T) {
	for _, in := range []string{"", "2", "1C", "11C", "0C", "2X", "XC", "1"} {
		if c, _, err := ScanCard(in); err == nil {
			t.Errorf("ScanCard(%q) = %v, want error", in, c)
		}
	}
}

func TestParseCardsRoundTrip(t *testing.T) {
	want := []Card{
		{Ten, Clubs},
		{Two, Hearts},
		{Ace, Spades},
		{Ten, Diamonds},
	}
	text := FormatCards(want)
	got, err := ParseCards(text)
	if err != nil {
		t.Fatalf("ParseCards(%q): %v", text, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseCards(%q) mismatch (-want +got):\n%s", text, diff)
	}
}

func TestParseCardRejectsTrailing(t *testing.T) {
	if c, err := ParseCard("2C3D"); err == nil {
		t.Errorf("ParseCard(\"2C3D\") = %v, want error", c)
	}
}

func TestBeats(t *testing.T) {
	for _, tc := range []struct {
		a, b Card
		lead Suit
		want bool
	}{
		{Card{Ace, Hearts}, Card{Two, Hearts}, Hearts, true},
		{Card{Two, Hearts}, Card{Ace, Hearts}, Hearts, false},
		{Card{Ace, Spades}, Card{Two, Hearts}, Hearts, false},
		{Card{Two, Hearts}, Card{Ace, Spades}, Hearts, true},
		{Card{King, Clubs}, Card{King, Clubs}, Hearts, false},
	} {
		if got := tc.a.Beats(tc.b, tc.lead); got != tc.want {
			t.Errorf("%v.Beats(%v, lead %v) = %t, want %t", tc.a, tc.b, tc.lead, got, tc.want)
		}
	}
}

func TestSeatNext(t *testing.T) {
	order := []Seat{North, East, South, West, North}
	for i := 0; i < 4; i++ {
		if got := order[i].Next(); got != order[i+1] {
			t.Errorf("%v.Next() = %v, want %v", order[i], got, order[i+1])
		}
	}
}

func TestParseSeat(t *testing.T) {
	for _, tc := range []struct {
		in   byte
		want Seat
	}{
		{'N', North}, {'E', East}, {'S', South}, {'W', West},
	} {
		got, err := ParseSeat(tc.in)
		if err != nil {
			t.Fatalf("ParseSeat(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseSeat(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if _, err := ParseSeat('X'); err == nil {
		t.Error("ParseSeat('X') succeeded, want error")
	}
}
