// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package wire

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmisiaszek/sik-2/kierki"
)

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		line string
		want Message
	}{
		{"IAMN", IAm{Seat: kierki.North}},
		{"IAMW", IAm{Seat: kierki.West}},
		{"BUSYE", Busy{Seats: []kierki.Seat{kierki.East}}},
		{"BUSYNESW", Busy{Seats: []kierki.Seat{kierki.North, kierki.East, kierki.South, kierki.West}}},
		{
			"DEAL3N2C3C4C5C6C7C8C9C10CJCQCKCAC",
			Deal{
				Type:   kierki.TypeQueens,
				Leader: kierki.North,
				Hand:   fullSuit(kierki.Clubs),
			},
		},
		{"TRICK1", Trick{N: 1}},
		{"TRICK13", Trick{N: 13}},
		{"TRICK12C", Trick{N: 1, Cards: cards("2C")}},
		{"TRICK110C", Trick{N: 1, Cards: cards("10C")}},
		{"TRICK1310H", Trick{N: 13, Cards: cards("10H")}},
		{"TRICK52C4D6H", Trick{N: 5, Cards: cards("2C", "4D", "6H")}},
		{"WRONG7", Wrong{N: 7}},
		{"WRONG13", Wrong{N: 13}},
		{
			"TAKEN110H2H3H4HN",
			Taken{N: 1, Cards: [4]kierki.Card{card("10H"), card("2H"), card("3H"), card("4H")}, Winner: kierki.North},
		},
		{
			"TAKEN132C3C4C5CW",
			Taken{N: 13, Cards: [4]kierki.Card{card("2C"), card("3C"), card("4C"), card("5C")}, Winner: kierki.West},
		},
		{"SCOREN13E0S0W0", Score{Points: [4]int{13, 0, 0, 0}}},
		{"SCOREW5S10E0N85", Score{Points: [4]int{85, 0, 10, 5}}},
		{"TOTALN1E2S3W4", Total{Points: [4]int{1, 2, 3, 4}}},
	} {
		got, err := Parse(tc.line)
		if err != nil {
			t.Errorf("Parse(%q): %v", tc.line, err)
			continue
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tc.line, diff)
		}
	}
}

func TestParseRejects(t *testing.T) {
	for _, line := range []string{
		"",
		"HELLO",
		"IAM",
		"IAMX",
		"IAMNE",
		"BUSY",
		"BUSYNN",
		"BUSYX",
		"DEAL8N2C3C4C5C6C7C8C9C10CJCQCKCAC",
		"DEAL1N2C",
		"DEAL1N2C3C4C5C6C7C8C9C10CJCQCKCAC2D",
		"TRICK",
		"TRICK0",
		"TRICK14",
		"TRICK12C ",
		"TRICK1 2C",
		"TRICK12C4D6H8SAS",
		"WRONG",
		"WRONG0",
		"WRONG01",
		"WRONG14",
		"TAKEN12C3C4CN",
		"TAKEN12C3C4C5C6CN",
		"TAKEN12C3C4C5CX",
		"SCOREN1E2S3",
		"SCOREN1N2S3W4",
		"SCOREN1E2S3W4X5",
		"SCOREN1E2S3W-4",
		"TOTALNE2S3W4",
	} {
		if got, err := Parse(line); err == nil {
			t.Errorf("Parse(%q) = %#v, want error", line, got)
		}
	}
}

func TestEncode(t *testing.T) {
	for _, tc := range []struct {
		msg  Message
		want string
	}{
		{IAm{Seat: kierki.South}, "IAMS\r\n"},
		{Busy{Seats: []kierki.Seat{kierki.North, kierki.West}}, "BUSYNW\r\n"},
		{Trick{N: 10, Cards: cards("10D", "JS")}, "TRICK1010DJS\r\n"},
		{Wrong{N: 2}, "WRONG2\r\n"},
		{
			Taken{N: 4, Cards: [4]kierki.Card{card("2C"), card("3C"), card("4C"), card("5C")}, Winner: kierki.East},
			"TAKEN42C3C4C5CE\r\n",
		},
		{Score{Points: [4]int{13, 0, 0, 0}}, "SCOREN13E0S0W0\r\n"},
		{Total{Points: [4]int{1, 22, 3, 4}}, "TOTALN1E22S3W4\r\n"},
	} {
		if got := string(tc.msg.Encode()); got != tc.want {
			t.Errorf("%#v.Encode() = %q, want %q", tc.msg, got, tc.want)
		}
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	msgs := []Message{
		IAm{Seat: kierki.East},
		Busy{Seats: []kierki.Seat{kierki.North, kierki.East, kierki.South}},
		Deal{Type: kierki.TypeRobber, Leader: kierki.West, Hand: fullSuit(kierki.Hearts)},
		Trick{N: 13, Cards: cards("10S", "AS", "2D")},
		Wrong{N: 11},
		Taken{N: 7, Cards: [4]kierki.Card{card("AH"), card("10H"), card("KH"), card("2S")}, Winner: kierki.South},
		Score{Points: [4]int{0, 0, 98, 2}},
		Total{Points: [4]int{10, 20, 30, 40}},
	}
	for _, msg := range msgs {
		frame := string(msg.Encode())
		line := strings.TrimSuffix(frame, "\r\n")
		if line == frame {
			t.Errorf("%#v.Encode() lacks CRLF", msg)
			continue
		}
		got, err := Parse(line)
		if err != nil {
			t.Errorf("Parse(%q): %v", line, err)
			continue
		}
		if diff := cmp.Diff(msg, got); diff != "" {
			t.Errorf("round trip mismatch for %q (-want +got):\n%s", line, diff)
		}
	}
}

func FuzzParse(f *testing.F) {
	f.Add("IAMN")
	f.Add("DEAL1W2C3C4C5C6C7C8C9C10CJCQCKCAC")
	f.Add("TRICK1310H")
	f.Add("TAKEN110H2H3H4HN")
	f.Add("SCOREN13E0S0W0")
	f.Fuzz(func(t *testing.T, line string) {
		msg, err := Parse(line)
		if err != nil {
			return
		}
		// Whatever parses must re-encode to a parseable frame of the
		// same meaning.
		frame := string(msg.Encode())
		again, err := Parse(strings.TrimSuffix(frame, "\r\n"))
		if err != nil {
			t.Fatalf("re-parse of %q from %q: %v", frame, line, err)
		}
		if diff := cmp.Diff(msg, again); diff != "" {
			t.Fatalf("re-parse of %q changed meaning (-first +second):\n%s", line, diff)
		}
	})
}

func card(s string) kierki.Card {
	c, err := kierki.ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

func cards(strs ...string) []kierki.Card {
	var out []kierki.Card
	for _, s := range strs {
		out = append(out, card(s))
	}
	return out
}

func fullSuit(suit kierki.Suit) []kierki.Card {
	var out []kierki.Card
	for rank := kierki.Two; rank <= kierki.Ace; rank++ {
		out = append(out, kierki.Card{Rank: rank, Suit: suit})
	}
	return out
}
