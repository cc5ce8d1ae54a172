// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package wire

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmisiaszek/sik-2/kierki"
)

// Message is one protocol message. Encode renders the full frame including
// the CRLF terminator; the encoders build the frame by appending bytes, so
// a message is serialized in a single pass.
type Message interface {
	Encode() []byte
}

// IAm is the client's seat request, the only message accepted from a
// pending connection.
type IAm struct {
	Seat kierki.Seat
}

func (m IAm) Encode() []byte {
	return appendCRLF(append([]byte("IAM"), m.Seat.String()...))
}

// Busy rejects a seat request, listing the currently occupied seats.
type Busy struct {
	Seats []kierki.Seat
}

func (m Busy) Encode() []byte {
	b := []byte("BUSY")
	for _, s := range m.Seats {
		b = append(b, s.String()...)
	}
	return appendCRLF(b)
}

// Deal announces a new deal: scoring type, first leader, and the receiving
// seat's 13 cards.
type Deal struct {
	Type   kierki.DealType
	Leader kierki.Seat
	Hand   []kierki.Card
}

func (m Deal) Encode() []byte {
	b := []byte("DEAL")
	b = append(b, m.Type.String()...)
	b = append(b, m.Leader.String()...)
	for _, c := range m.Hand {
		b = append(b, c.String()...)
	}
	return appendCRLF(b)
}

// Trick carries the trick number and cards. From the server it is a prompt
// holding the 0-3 cards already played; from the client it is a reply
// holding exactly one card.
type Trick struct {
	N     int
	Cards []kierki.Card
}

func (m Trick) Encode() []byte {
	b := []byte("TRICK")
	b = strconv.AppendInt(b, int64(m.N), 10)
	for _, c := range m.Cards {
		b = append(b, c.String()...)
	}
	return appendCRLF(b)
}

// Wrong rejects an invalid client Trick reply.
type Wrong struct {
	N int
}

func (m Wrong) Encode() []byte {
	return appendCRLF(strconv.AppendInt([]byte("WRONG"), int64(m.N), 10))
}

// Taken announces a resolved trick: the four cards in play order and the
// seat that took them.
type Taken struct {
	N      int
	Cards  [4]kierki.Card
	Winner kierki.Seat
}

func (m Taken) Encode() []byte {
	b := []byte("TAKEN")
	b = strconv.AppendInt(b, int64(m.N), 10)
	for _, c := range m.Cards {
		b = append(b, c.String()...)
	}
	b = append(b, m.Winner.String()...)
	return appendCRLF(b)
}

// Score reports the points each seat earned in the deal just finished.
// Points is indexed by seat; the frame renders seats in N, E, S, W order.
type Score struct {
	Points [4]int
}

func (m Score) Encode() []byte {
	return appendCRLF(appendSeatPoints([]byte("SCORE"), m.Points))
}

// Total reports the cumulative points across all finished deals, in the
// same shape as Score.
type Total struct {
	Points [4]int
}

func (m Total) Encode() []byte {
	return appendCRLF(appendSeatPoints([]byte("TOTAL"), m.Points))
}

func appendSeatPoints(b []byte, points [4]int) []byte {
	for _, s := range kierki.Seats {
		b = append(b, s.String()...)
		b = strconv.AppendInt(b, int64(points[s]), 10)
	}
	return b
}

func appendCRLF(b []byte) []byte {
	return append(b, '\r', '\n')
}

// Parse decodes one frame (without its CRLF terminator) into a message.
// The grammar admits no whitespace and no trailing bytes.
func Parse(line string) (Message, error) {
	switch {
	case strings.HasPrefix(line, "IAM"):
		return parseIAm(line[3:])
	case strings.HasPrefix(line, "BUSY"):
		return parseBusy(line[4:])
	case strings.HasPrefix(line, "DEAL"):
		return parseDeal(line[4:])
	case strings.HasPrefix(line, "TRICK"):
		return parseTrick(line[5:])
	case strings.HasPrefix(line, "WRONG"):
		return parseWrong(line[5:])
	case strings.HasPrefix(line, "TAKEN"):
		return parseTaken(line[5:])
	case strings.HasPrefix(line, "SCORE"):
		p, err := parseSeatPoints(line[5:])
		return Score{Points: p}, err
	case strings.HasPrefix(line, "TOTAL"):
		p, err := parseSeatPoints(line[5:])
		return Total{Points: p}, err
	}
	return nil, fmt.Errorf("unknown message keyword")
}

func parseIAm(body string) (Message, error) {
	if len(body) != 1 {
		return nil, fmt.Errorf("IAM wants exactly one seat letter")
	}
	seat, err := kierki.ParseSeat(body[0])
	if err != nil {
		return nil, err
	}
	return IAm{Seat: seat}, nil
}

func parseBusy(body string) (Message, error) {
	if len(body) < 1 || len(body) > 4 {
		return nil, fmt.Errorf("BUSY wants 1 to 4 seat letters")
	}
	var seen [4]bool
	var seats []kierki.Seat
	for i := 0; i < len(body); i++ {
		seat, err := kierki.ParseSeat(body[i])
		if err != nil {
			return nil, err
		}
		if seen[seat] {
			return nil, fmt.Errorf("seat %v listed twice", seat)
		}
		seen[seat] = true
		seats = append(seats, seat)
	}
	return Busy{Seats: seats}, nil
}

func parseDeal(body string) (Message, error) {
	if len(body) < 2 {
		return nil, fmt.Errorf("DEAL header truncated")
	}
	dealType, err := kierki.ParseDealType(body[0])
	if err != nil {
		return nil, err
	}
	leader, err := kierki.ParseSeat(body[1])
	if err != nil {
		return nil, err
	}
	hand, err := kierki.ParseCards(body[2:])
	if err != nil {
		return nil, err
	}
	if len(hand) != kierki.HandSize {
		return nil, fmt.Errorf("DEAL carries %d cards, want %d", len(hand), kierki.HandSize)
	}
	return Deal{Type: dealType, Leader: leader, Hand: hand}, nil
}

// parseTrick resolves the 1-vs-2 digit trick number by attempting the
// short reading first. At most one attempt can succeed: a card never
// starts with '0' and suit characters are not digits.
func parseTrick(body string) (Message, error) {
	if m, err := parseTrickN(body, 1); err == nil {
		return m, nil
	}
	return parseTrickN(body, 2)
}

func parseTrickN(body string, digits int) (Message, error) {
	n, err := parseTrickNumber(body, digits)
	if err != nil {
		return nil, err
	}
	cards, err := kierki.ParseCards(body[digits:])
	if err != nil {
		return nil, err
	}
	if len(cards) > 4 {
		return nil, fmt.Errorf("TRICK carries %d cards", len(cards))
	}
	return Trick{N: n, Cards: cards}, nil
}

func parseWrong(body string) (Message, error) {
	n, err := parseTrickNumber(body, len(body))
	if err != nil {
		return nil, err
	}
	return Wrong{N: n}, nil
}

// parseTaken resolves the trick-number width the same way parseTrick does:
// the short reading first, the two-digit reading only if it fails.
func parseTaken(body string) (Message, error) {
	if m, err := parseTakenN(body, 1); err == nil {
		return m, nil
	}
	return parseTakenN(body, 2)
}

func parseTakenN(body string, digits int) (Message, error) {
	n, err := parseTrickNumber(body, digits)
	if err != nil {
		return nil, err
	}
	body = body[digits:]
	if len(body) < 1 {
		return nil, fmt.Errorf("TAKEN truncated")
	}
	winner, err := kierki.ParseSeat(body[len(body)-1])
	if err != nil {
		return nil, err
	}
	cards, err := kierki.ParseCards(body[:len(body)-1])
	if err != nil {
		return nil, err
	}
	if len(cards) != 4 {
		return nil, fmt.Errorf("TAKEN carries %d cards, want 4", len(cards))
	}
	m := Taken{N: n, Winner: winner}
	copy(m.Cards[:], cards)
	return m, nil
}

// parseTrickNumber decodes a trick number rendered as exactly the given
// number of decimal digits, with no padding, in 1..13.
func parseTrickNumber(body string, digits int) (int, error) {
	if digits < 1 || len(body) < digits {
		return 0, fmt.Errorf("missing trick number")
	}
	n := 0
	for i := 0; i < digits; i++ {
		if body[i] < '0' || body[i] > '9' {
			return 0, fmt.Errorf("bad trick number character %q", body[i])
		}
		n = n*10 + int(body[i]-'0')
	}
	if n < 1 || n > 13 || (digits == 2 && n < 10) {
		return 0, fmt.Errorf("trick number %d out of range", n)
	}
	return n, nil
}

// parseSeatPoints decodes the SCORE/TOTAL body: four seat letters, each
// followed by a non-negative decimal, each seat exactly once, in any order.
func parseSeatPoints(body string) ([4]int, error) {
	var points [4]int
	var seen [4]bool
	for i := 0; i < 4; i++ {
		if len(body) == 0 {
			return points, fmt.Errorf("truncated after %d seats", i)
		}
		seat, err := kierki.ParseSeat(body[0])
		if err != nil {
			return points, err
		}
		if seen[seat] {
			return points, fmt.Errorf("seat %v listed twice", seat)
		}
		seen[seat] = true
		body = body[1:]
		j := 0
		for j < len(body) && body[j] >= '0' && body[j] <= '9' {
			j++
		}
		if j == 0 {
			return points, fmt.Errorf("missing score for seat %v", seat)
		}
		n, err := strconv.Atoi(body[:j])
		if err != nil {
			return points, fmt.Errorf("bad score for seat %v: %w", seat, err)
		}
		points[seat] = n
		body = body[j:]
	}
	if len(body) != 0 {
		return points, fmt.Errorf("trailing bytes %q", body)
	}
	return points, nil
}
