// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package kierki

// TrickPoints returns the points the winner of trick trickIdx (0-based)
// earns under the given deal type for taking the four cards.
func TrickPoints(t DealType, trickIdx int, cards [4]Card) int {
	switch t {
	case TypeTricks:
		return 1
	case TypeHearts:
		pts := 0
		for _, c := range cards {
			if c.Suit == Hearts {
				pts++
			}
		}
		return pts
	case TypeQueens:
		pts := 0
		for _, c := range cards {
			if c.Rank == Queen {
				pts += 5
			}
		}
		return pts
	case TypeGentlemen:
		pts := 0
		for _, c := range cards {
			if c.Rank == Jack || c.Rank == King {
				pts += 2
			}
		}
		return pts
	case TypeKingOfHearts:
		for _, c := range cards {
			if c.Rank == King && c.Suit == Hearts {
				return 18
			}
		}
		return 0
	case TypeSeventhLast:
		if trickIdx == 6 || trickIdx == 12 {
			return 10
		}
		return 0
	case TypeRobber:
		pts := 0
		for sub := TypeTricks; sub <= TypeSeventhLast; sub++ {
			pts += TrickPoints(sub, trickIdx, cards)
		}
		return pts
	}
	return 0
}

// DealTotal returns the points a full deal of the given type distributes
// across the four seats.
func DealTotal(t DealType) int {
	switch t {
	case TypeTricks:
		return 13
	case TypeHearts:
		return 13
	case TypeQueens:
		return 20
	case TypeGentlemen:
		return 16
	case TypeKingOfHearts:
		return 18
	case TypeSeventhLast:
		return 20
	case TypeRobber:
		return 13 + 13 + 20 + 16 + 18 + 20
	}
	return 0
}
