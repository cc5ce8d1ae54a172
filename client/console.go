// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package client

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmisiaszek/sik-2/kierki"
	"github.com/jmisiaszek/sik-2/lib/color"
	"github.com/jmisiaszek/sik-2/wire"
)

// console renders server messages and the player's state for the
// interactive mode.
type console struct {
	w     io.Writer
	color color.Color
}

func (c *console) printf(format string, a ...any) {
	fmt.Fprintf(c.w, format+"\n", a...)
}

func cardList(cards []kierki.Card) string {
	strs := make([]string, len(cards))
	for i, card := range cards {
		strs[i] = card.String()
	}
	return strings.Join(strs, ", ")
}

func (c *console) renderDeal(m wire.Deal) {
	c.printf("New deal of type %v, %s leads.", m.Type, c.color.Green("%v", m.Leader))
	c.printf("Your cards: %s.", cardList(m.Hand))
}

func (c *console) renderBusy(m wire.Busy) {
	var letters []string
	for _, s := range m.Seats {
		letters = append(letters, s.String())
	}
	c.printf("%s Occupied seats: %s.", c.color.Red("Seat taken."), strings.Join(letters, ", "))
}

func (c *console) renderPrompt(m wire.Trick, hand []kierki.Card) {
	if len(m.Cards) == 0 {
		c.printf("Trick %d: you lead.", m.N)
	} else {
		c.printf("Trick %d: on the table %s.", m.N, cardList(m.Cards))
	}
	if len(hand) == 0 {
		c.printf("Your hand is empty.")
		return
	}
	c.printf("Your cards: %s.", cardList(hand))
	c.printf("Play with !<card>, e.g. !%s.", hand[0])
}

func (c *console) renderWrong(m wire.Wrong) {
	c.printf("%s", c.color.Red("Wrong card for trick %d.", m.N))
}

func (c *console) renderTaken(m wire.Taken, mine bool) {
	who := m.Winner.String()
	if mine {
		who = c.color.Green("you")
	}
	c.printf("Trick %d (%s) taken by %s.", m.N, cardList(m.Cards[:]), who)
}

func (c *console) renderPoints(header string, points [4]int) {
	var parts []string
	for _, s := range kierki.Seats {
		parts = append(parts, fmt.Sprintf("%v %d", s, points[s]))
	}
	c.printf("%s: %s.", header, strings.Join(parts, ", "))
}

func (c *console) renderHand(hand []kierki.Card) {
	c.printf("Your cards: %s.", cardList(hand))
}

func (c *console) renderTricks(taken []wire.Taken) {
	if len(taken) == 0 {
		c.printf("No tricks resolved yet.")
		return
	}
	for _, t := range taken {
		c.printf("Trick %d (%s) taken by %v.", t.N, cardList(t.Cards[:]), t.Winner)
	}
}

func (c *console) renderHelp() {
	c.printf("Commands: cards, tricks, !<card>.")
}
