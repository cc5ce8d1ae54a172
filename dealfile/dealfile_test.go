// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package dealfile

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmisiaszek/sik-2/kierki"
)

const oneDeal = `1N
2C3C4C5C6C7C8C9C10CJCQCKCAC
2D3D4D5D6D7D8D9D10DJDQDKDAD
2H3H4H5H6H7H8H9H10HJHQHKHAH
2S3S4S5S6S7S8S9S10SJSQSKSAS
`

func TestParse(t *testing.T) {
	deals, err := Parse(strings.NewReader(oneDeal + strings.Replace(oneDeal, "1N", "7W", 1)))
	if err != nil {
		t.Fatal(err)
	}
	if len(deals) != 2 {
		t.Fatalf("parsed %d deals, want 2", len(deals))
	}
	if deals[0].Type != kierki.TypeTricks || deals[0].Leader != kierki.North {
		t.Errorf("deal 1 header = type %v leader %v, want 1 N", deals[0].Type, deals[0].Leader)
	}
	if deals[1].Type != kierki.TypeRobber || deals[1].Leader != kierki.West {
		t.Errorf("deal 2 header = type %v leader %v, want 7 W", deals[1].Type, deals[1].Leader)
	}
	wantNorth := make([]kierki.Card, 0, 13)
	for rank := kierki.Two; rank <= kierki.Ace; rank++ {
		wantNorth = append(wantNorth, kierki.Card{Rank: rank, Suit: kierki.Clubs})
	}
	if diff := cmp.Diff(wantNorth, deals[0].Hands[kierki.North]); diff != "" {
		t.Errorf("North's hand mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		name    string
		in      string
		wantSub string
	}{
		{"empty", "", "no deals"},
		{"bad header", "XX\n", "line 1"},
		{"truncated group", "1N\n2C3C4C5C6C7C8C9C10CJCQCKCAC\n", "line 3"},
		{"bad card", strings.Replace(oneDeal, "2C", "2X", 1), "line 2"},
		{"duplicate card", strings.Replace(oneDeal, "2D", "2C", 1), "line 5"},
		{"unterminated", strings.TrimSuffix(oneDeal, "\n"), "unterminated"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.in))
			if err == nil {
				t.Fatal("Parse succeeded, want error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Errorf("error %q does not mention %q", err, tc.wantSub)
			}
		})
	}
}

func TestLoadNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.txt")
	if err := os.WriteFile(path, []byte("9N\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load succeeded on a bad script")
	}
	if !strings.Contains(err.Error(), "game.txt") {
		t.Errorf("error %q does not name the file", err)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	deals, err := Generate(rand.New(rand.NewSource(1)), 3, []kierki.DealType{kierki.TypeHearts, kierki.TypeRobber})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, deals); err != nil {
		t.Fatal(err)
	}
	again, err := Parse(&buf)
	if err != nil {
		t.Fatalf("re-parsing written script: %v", err)
	}
	if diff := cmp.Diff(deals, again); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateDealsValidate(t *testing.T) {
	deals, err := Generate(rand.New(rand.NewSource(42)), 5, []kierki.DealType{kierki.TypeTricks})
	if err != nil {
		t.Fatal(err)
	}
	if len(deals) != 5 {
		t.Fatalf("generated %d deals, want 5", len(deals))
	}
	for i, d := range deals {
		if err := d.Validate(); err != nil {
			t.Errorf("deal %d: %v", i+1, err)
		}
	}
}

func TestGenerateRejectsBadArgs(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := Generate(rng, 0, []kierki.DealType{kierki.TypeTricks}); err == nil {
		t.Error("Generate with zero deals succeeded")
	}
	if _, err := Generate(rng, 1, nil); err == nil {
		t.Error("Generate with no types succeeded")
	}
}
