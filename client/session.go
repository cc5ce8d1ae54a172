// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jmisiaszek/sik-2/kierki"
	"github.com/jmisiaszek/sik-2/lib/color"
	"github.com/jmisiaszek/sik-2/report"
	"github.com/jmisiaszek/sik-2/wire"
)

// serverMsg is one framed server message (or terminal error) delivered by
// the read pump to the session loop.
type serverMsg struct {
	frame string
	msg   wire.Message
	err   error
}

// Options configure a Session.
type Options struct {
	// Seat is the table position to claim with IAM.
	Seat kierki.Seat
	// Automatic selects the self-playing strategy over the console.
	Automatic bool
	// Report receives the traffic report; used in automatic mode.
	Report *report.Writer
	// Input and Output are the terminal in interactive mode. They default
	// to stdin and stdout.
	Input  io.Reader
	Output io.Writer
	// Color renders the interactive output; defaults to auto-detection.
	Color color.Color
}

// Session is the player's side of one connection: it claims a seat and
// then plays deals until the server hangs up. The session's view of the
// hand and tricks is owned by the loop goroutine; the read and line pumps
// only deliver raw input.
type Session struct {
	conn net.Conn
	seat kierki.Seat
	auto bool
	rep  *report.Writer
	con  *console
	in   io.Reader

	hand        []kierki.Card
	trickLeader kierki.Seat
	taken       []wire.Taken
	prompt      *wire.Trick
	pending     kierki.Card
	hasPending  bool
	rejected    map[kierki.Card]bool
	// Set after TOTAL; an EOF here is the clean end of the tournament.
	betweenDeals bool
}

func New(conn net.Conn, opts Options) *Session {
	s := &Session{
		conn: conn,
		seat: opts.Seat,
		auto: opts.Automatic,
		rep:  opts.Report,
		in:   opts.Input,
	}
	if !s.auto {
		if s.in == nil {
			s.in = os.Stdin
		}
		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		col := opts.Color
		if col == nil {
			col = color.NewColor(color.ColorAuto)
		}
		s.con = &console{w: out, color: col}
	}
	return s
}

// Run claims the seat and plays until the tournament ends. It returns nil
// on a clean end (EOF after a TOTAL) and an error for a BUSY rejection or
// any protocol failure.
func (s *Session) Run(ctx context.Context) error {
	if err := s.sendMsg(ctx, wire.IAm{Seat: s.seat}); err != nil {
		return fmt.Errorf("sending IAM: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	msgs := make(chan serverMsg)
	lines := make(chan string)
	var g errgroup.Group
	g.Go(func() error {
		s.readPump(ctx, msgs)
		return nil
	})
	if !s.auto {
		// Not joined: a blocked terminal read has no cancellation point.
		go s.linePump(ctx, lines)
	}
	var loopErr error
	g.Go(func() error {
		defer cancel()
		defer s.conn.Close()
		loopErr = s.loop(ctx, msgs, lines)
		return nil
	})
	g.Wait()
	return loopErr
}

func (s *Session) readPump(ctx context.Context, msgs chan<- serverMsg) {
	fr := wire.NewFrameReader(s.conn)
	for {
		m := serverMsg{}
		m.frame, m.err = fr.ReadFrame()
		if m.err == nil {
			m.msg, m.err = wire.Parse(m.frame)
			if m.err != nil {
				m.err = fmt.Errorf("bad message %q: %w", m.frame, m.err)
			}
		}
		select {
		case msgs <- m:
		case <-ctx.Done():
			return
		}
		if m.err != nil {
			return
		}
	}
}

func (s *Session) linePump(ctx context.Context, lines chan<- string) {
	sc := bufio.NewScanner(s.in)
	for sc.Scan() {
		select {
		case lines <- sc.Text():
		case <-ctx.Done():
			return
		}
	}
}

func (s *Session) loop(ctx context.Context, msgs <-chan serverMsg, lines <-chan string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m := <-msgs:
			if m.err != nil {
				if errors.Is(m.err, io.EOF) && s.betweenDeals {
					return nil
				}
				return fmt.Errorf("server connection: %w", m.err)
			}
			if err := s.handleMessage(ctx, m); err != nil {
				return err
			}
		case line := <-lines:
			if err := s.handleCommand(ctx, line); err != nil {
				return err
			}
		}
	}
}

func (s *Session) handleMessage(ctx context.Context, sm serverMsg) error {
	s.rep.Record(ctx, s.conn.RemoteAddr(), s.conn.LocalAddr(), []byte(sm.frame))
	switch m := sm.msg.(type) {
	case wire.Busy:
		if s.con != nil {
			s.con.renderBusy(m)
		}
		return fmt.Errorf("seat %v is occupied", s.seat)
	case wire.Deal:
		s.hand = append([]kierki.Card(nil), m.Hand...)
		s.trickLeader = m.Leader
		s.taken = nil
		s.prompt = nil
		s.hasPending = false
		s.rejected = nil
		s.betweenDeals = false
		if s.con != nil {
			s.con.renderDeal(m)
		}
	case wire.Trick:
		if len(m.Cards) > 3 {
			return fmt.Errorf("server prompt carries %d cards", len(m.Cards))
		}
		if s.hasPending && samePrompt(s.prompt, m) {
			// Re-prompt racing with our reply; the reply stands.
			return nil
		}
		if (s.trickLeader+kierki.Seat(len(m.Cards)))%4 != s.seat {
			// A reconnection catch-up replays the in-flight prompt to the
			// rejoining seat even when another seat is to play. Only the
			// addressed seat answers; the rest of the trick arrives as
			// usual.
			return nil
		}
		s.prompt = &m
		if s.auto {
			return s.autoPlay(ctx)
		}
		s.con.renderPrompt(m, s.hand)
	case wire.Wrong:
		if s.hasPending {
			if s.rejected == nil {
				s.rejected = make(map[kierki.Card]bool)
			}
			s.rejected[s.pending] = true
			s.hasPending = false
		}
		if s.con != nil {
			s.con.renderWrong(m)
		}
		if s.auto && s.prompt != nil {
			return s.autoPlay(ctx)
		}
	case wire.Taken:
		s.applyTaken(m)
		if s.con != nil {
			s.con.renderTaken(m, m.Winner == s.seat)
		}
	case wire.Score:
		if s.con != nil {
			s.con.renderPoints("Deal scores", m.Points)
		}
	case wire.Total:
		if s.con != nil {
			s.con.renderPoints("Total scores", m.Points)
		}
		s.betweenDeals = true
	default:
		return fmt.Errorf("unexpected message %q", sm.frame)
	}
	return nil
}

// applyTaken folds a resolved trick into the session's view. The cards
// are in play order starting from the trick's leader, so the seat's own
// card sits at a known offset; tracking the leader chain this way also
// makes the reconnection catch-up replay come out right.
func (s *Session) applyTaken(m wire.Taken) {
	idx := (int(s.seat) - int(s.trickLeader) + 4) % 4
	ours := m.Cards[idx]
	for i, c := range s.hand {
		if c == ours {
			s.hand = append(s.hand[:i], s.hand[i+1:]...)
			break
		}
	}
	s.trickLeader = m.Winner
	s.taken = append(s.taken, m)
	s.prompt = nil
	s.hasPending = false
	s.rejected = nil
}

func (s *Session) autoPlay(ctx context.Context) error {
	card, err := ChooseCard(s.hand, s.prompt.Cards, s.rejected)
	if err != nil {
		return fmt.Errorf("trick %d: %w", s.prompt.N, err)
	}
	if err := s.sendMsg(ctx, wire.Trick{N: s.prompt.N, Cards: []kierki.Card{card}}); err != nil {
		return err
	}
	s.pending = card
	s.hasPending = true
	return nil
}

func (s *Session) handleCommand(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	switch {
	case line == "cards":
		s.con.renderHand(s.hand)
	case line == "tricks":
		s.con.renderTricks(s.taken)
	case strings.HasPrefix(line, "!"):
		card, err := kierki.ParseCard(line[1:])
		if err != nil {
			s.con.printf("Bad card %q.", line[1:])
			return nil
		}
		if s.prompt == nil {
			s.con.printf("No trick to play to.")
			return nil
		}
		if err := s.sendMsg(ctx, wire.Trick{N: s.prompt.N, Cards: []kierki.Card{card}}); err != nil {
			return err
		}
		s.pending = card
		s.hasPending = true
	case line == "":
	default:
		s.con.renderHelp()
	}
	return nil
}

func (s *Session) sendMsg(ctx context.Context, m wire.Message) error {
	frame := m.Encode()
	s.rep.Record(ctx, s.conn.LocalAddr(), s.conn.RemoteAddr(), frame)
	_, err := s.conn.Write(frame)
	return err
}

func samePrompt(a *wire.Trick, b wire.Trick) bool {
	if a == nil || a.N != b.N || len(a.Cards) != len(b.Cards) {
		return false
	}
	for i := range a.Cards {
		if a.Cards[i] != b.Cards[i] {
			return false
		}
	}
	return true
}
