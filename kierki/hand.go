// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package kierki

import (
	"errors"
	"fmt"
)

// Violations of the play rules. The referee answers WRONG for any of these;
// they never terminate the deal.
var (
	ErrNotYourTurn  = errors.New("not this seat's turn")
	ErrWrongTrick   = errors.New("trick number does not match the current trick")
	ErrCardNotHeld  = errors.New("card not in hand")
	ErrMustFollow   = errors.New("must follow the lead suit")
	ErrDealFinished = errors.New("deal already finished")
)

// TakenTrick records one resolved trick: the cards in play order starting
// from that trick's leader, and the seat that took it.
type TakenTrick struct {
	Cards  [4]Card
	Winner Seat
}

// Play is one card laid by one seat.
type Play struct {
	Seat Seat
	Card Card
}

// HandState tracks a single deal in progress. It is owned by whoever drives
// the deal (the server's session loop, or the offline simulator) and is not
// safe for concurrent use.
type HandState struct {
	spec      DealSpec
	remaining [4]map[Card]bool
	trickIdx  int
	leadSeat  Seat
	plays     []Play
	points    [4]int
	taken     []TakenTrick
}

// NewHandState starts a deal from its spec. The spec must already be
// validated.
func NewHandState(spec DealSpec) *HandState {
	h := &HandState{
		spec:     spec,
		leadSeat: spec.Leader,
	}
	for _, seat := range Seats {
		h.remaining[seat] = make(map[Card]bool, HandSize)
		for _, c := range spec.Hands[seat] {
			h.remaining[seat][c] = true
		}
	}
	return h
}

// Spec returns the deal this state was started from.
func (h *HandState) Spec() DealSpec { return h.spec }

// TrickNumber returns the 1-based number of the trick in progress, or 14
// once the deal is finished.
func (h *HandState) TrickNumber() int { return h.trickIdx + 1 }

// Finished reports whether all 13 tricks have been resolved.
func (h *HandState) Finished() bool { return h.trickIdx >= HandSize }

// NextToPlay returns the seat the referee is waiting on.
func (h *HandState) NextToPlay() Seat {
	return (h.leadSeat + Seat(len(h.plays))) % 4
}

// Plays returns the cards laid so far in the trick in progress, in play
// order.
func (h *HandState) Plays() []Play { return h.plays }

// Points returns the points the seat has accrued this deal.
func (h *HandState) Points(s Seat) int { return h.points[s] }

// Taken returns the resolved tricks so far, in trick order.
func (h *HandState) Taken() []TakenTrick { return h.taken }

// Holds reports whether the seat still holds the card.
func (h *HandState) Holds(s Seat, c Card) bool { return h.remaining[s][c] }

// Remaining returns the cards the seat still holds, in the order they were
// dealt.
func (h *HandState) Remaining(s Seat) []Card {
	var cards []Card
	for _, c := range h.spec.Hands[s] {
		if h.remaining[s][c] {
			cards = append(cards, c)
		}
	}
	return cards
}

// holdsSuit reports whether the seat holds any card of the suit.
func (h *HandState) holdsSuit(s Seat, suit Suit) bool {
	for c := range h.remaining[s] {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

// PlayCard applies one play attempt from the given seat against trick
// number n (1-based). It returns a rule violation without mutating state,
// or nil after removing the card from the hand and appending it to the
// trick.
func (h *HandState) PlayCard(s Seat, n int, c Card) error {
	if h.Finished() {
		return ErrDealFinished
	}
	if s != h.NextToPlay() {
		return ErrNotYourTurn
	}
	if n != h.TrickNumber() {
		return fmt.Errorf("%w: got %d, playing %d", ErrWrongTrick, n, h.TrickNumber())
	}
	if !h.remaining[s][c] {
		return fmt.Errorf("%w: %v", ErrCardNotHeld, c)
	}
	if len(h.plays) > 0 {
		lead := h.plays[0].Card.Suit
		if c.Suit != lead && h.holdsSuit(s, lead) {
			return fmt.Errorf("%w: lead is %v", ErrMustFollow, lead)
		}
	}
	delete(h.remaining[s], c)
	h.plays = append(h.plays, Play{Seat: s, Card: c})
	return nil
}

// TrickComplete reports whether all four seats have played to the current
// trick.
func (h *HandState) TrickComplete() bool { return len(h.plays) == 4 }

// ResolveTrick scores the completed trick, credits the winner, and advances
// to the next trick with the winner leading. It returns the resolved trick.
func (h *HandState) ResolveTrick() (TakenTrick, error) {
	if !h.TrickComplete() {
		return TakenTrick{}, fmt.Errorf("trick %d has only %d plays", h.TrickNumber(), len(h.plays))
	}
	lead := h.plays[0].Card.Suit
	winner := h.plays[0]
	var cards [4]Card
	for i, p := range h.plays {
		cards[i] = p.Card
		if i > 0 && p.Card.Beats(winner.Card, lead) {
			winner = p
		}
	}
	t := TakenTrick{Cards: cards, Winner: winner.Seat}
	h.points[winner.Seat] += TrickPoints(h.spec.Type, h.trickIdx, cards)
	h.taken = append(h.taken, t)
	h.trickIdx++
	h.leadSeat = winner.Seat
	h.plays = nil
	return t, nil
}
