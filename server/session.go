// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"go.uber.org/multierr"

	"github.com/jmisiaszek/sik-2/kierki"
	"github.com/jmisiaszek/sik-2/lib/clock"
	"github.com/jmisiaszek/sik-2/lib/logger"
	"github.com/jmisiaszek/sik-2/report"
	"github.com/jmisiaszek/sik-2/wire"
)

// pendingSlots bounds how many accepted-but-unseated connections the
// session tracks; further peers are closed on accept.
const pendingSlots = 4

// Session drives one scripted tournament. All tournament and table state
// is owned by the goroutine running Run; connection readers only frame
// and parse, handing messages over on unbuffered channels, so no state
// needs locking.
//
// The referee pauses whenever a seat is vacant during a deal: the loop
// stops selecting on every seat's channel, which holds seated peers'
// input back mid-delivery, and the re-prompt clock stops. Admission stays
// live so the vacancy can be refilled.
type Session struct {
	ln      net.Listener
	deals   []kierki.DealSpec
	timeout time.Duration
	rep     *report.Writer

	table    seatTable
	pending  [pendingSlots]*conn
	accepted chan net.Conn

	hand    *kierki.HandState
	dealIdx int
	totals  [4]int

	// The in-flight TRICK prompt. Re-prompts and reconnection catch-up
	// resend exactly these bytes.
	promptFrame []byte
	promptAt    time.Time
	prompted    bool

	draining bool
	finished bool
}

// New builds a session serving the given deals on the listener. The
// timeout governs both the pending-connection idle limit and the
// re-prompt interval. rep may be nil to disable traffic reporting.
func New(ln net.Listener, deals []kierki.DealSpec, timeout time.Duration, rep *report.Writer) *Session {
	return &Session{
		ln:       ln,
		deals:    deals,
		timeout:  timeout,
		rep:      rep,
		accepted: make(chan net.Conn),
	}
}

// Run plays the tournament to completion and returns once the last deal's
// TOTAL has been sent and all connections are closed. Canceling the
// context stops admission and lets an in-flight deal finish when all
// seats are occupied; otherwise the session shuts down immediately.
func (s *Session) Run(ctx context.Context) error {
	acceptDone := make(chan struct{})
	defer close(acceptDone)
	go s.acceptLoop(acceptDone)

	ctxDone := ctx.Done()
	for !s.finished {
		var timerCh <-chan time.Time
		if wait, ok := s.nextDeadline(ctx); ok {
			timerCh = clock.After(ctx, wait)
		}
		select {
		case <-ctxDone:
			ctxDone = nil
			s.beginDrain(ctx)
		case nc := <-s.accepted:
			s.admit(ctx, nc)
		case in := <-s.pending[0].inChan():
			s.handlePending(ctx, 0, in)
		case in := <-s.pending[1].inChan():
			s.handlePending(ctx, 1, in)
		case in := <-s.pending[2].inChan():
			s.handlePending(ctx, 2, in)
		case in := <-s.pending[3].inChan():
			s.handlePending(ctx, 3, in)
		case in := <-s.seatChan(kierki.North):
			s.handleSeat(ctx, kierki.North, in)
		case in := <-s.seatChan(kierki.East):
			s.handleSeat(ctx, kierki.East, in)
		case in := <-s.seatChan(kierki.South):
			s.handleSeat(ctx, kierki.South, in)
		case in := <-s.seatChan(kierki.West):
			s.handleSeat(ctx, kierki.West, in)
		case <-timerCh:
			s.handleTick(ctx)
		}
		if s.draining && !s.finished && (s.hand == nil || !s.table.allSeated()) {
			s.finished = true
		}
	}
	return s.closeAll()
}

func (s *Session) acceptLoop(done <-chan struct{}) {
	for {
		nc, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			continue
		}
		select {
		case s.accepted <- nc:
		case <-done:
			nc.Close()
			return
		}
	}
}

// seatChan returns the channel to receive the seat's next message on, or
// nil while the referee is paused so the select holds everyone back.
func (s *Session) seatChan(seat kierki.Seat) chan inbound {
	if !s.table.allSeated() {
		return nil
	}
	return s.table.get(seat).inChan()
}

// nextDeadline reports how long until the nearest timer: a pending
// connection's idle expiry or the current player's re-prompt.
func (s *Session) nextDeadline(ctx context.Context) (time.Duration, bool) {
	var deadline time.Time
	earliest := func(t time.Time) {
		if deadline.IsZero() || t.Before(deadline) {
			deadline = t
		}
	}
	for _, c := range s.pending {
		if c != nil {
			earliest(c.acceptedAt.Add(s.timeout))
		}
	}
	if s.prompted && s.table.allSeated() {
		earliest(s.promptAt.Add(s.timeout))
	}
	if deadline.IsZero() {
		return 0, false
	}
	return deadline.Sub(clock.Now(ctx)), true
}

func (s *Session) beginDrain(ctx context.Context) {
	s.draining = true
	s.ln.Close()
	for i, c := range s.pending {
		if c != nil {
			c.close()
			s.pending[i] = nil
		}
	}
	logger.Infof(ctx, "shutting down: no longer accepting connections")
}

func (s *Session) admit(ctx context.Context, nc net.Conn) {
	if s.draining {
		nc.Close()
		return
	}
	for i := range s.pending {
		if s.pending[i] == nil {
			s.pending[i] = newConn(nc, clock.Now(ctx))
			logger.Debugf(ctx, "accepted %s", nc.RemoteAddr())
			return
		}
	}
	// All pending slots taken.
	logger.Debugf(ctx, "no pending slot for %s, dropping", nc.RemoteAddr())
	nc.Close()
}

func (s *Session) handlePending(ctx context.Context, slot int, in inbound) {
	c := s.pending[slot]
	if in.err != nil {
		s.dropPending(ctx, slot, in.err)
		return
	}
	s.rep.Record(ctx, c.nc.RemoteAddr(), c.nc.LocalAddr(), []byte(in.frame))
	iam, ok := in.msg.(wire.IAm)
	if !ok {
		s.dropPending(ctx, slot, fmt.Errorf("sent %q before IAM", in.frame))
		return
	}
	s.pending[slot] = nil
	s.assign(ctx, c, iam.Seat)
}

func (s *Session) dropPending(ctx context.Context, slot int, reason error) {
	c := s.pending[slot]
	logger.Debugf(ctx, "dropping pending connection %s: %v", c.nc.RemoteAddr(), reason)
	c.close()
	s.pending[slot] = nil
}

// assign seats the connection, or answers BUSY and closes it if the seat
// is taken. A connection seated mid-deal is caught up with the current
// DEAL, every resolved trick, and the in-flight TRICK prompt.
func (s *Session) assign(ctx context.Context, c *conn, seat kierki.Seat) {
	if s.table.get(seat) != nil {
		s.send(ctx, c, wire.Busy{Seats: s.table.occupied()})
		c.close()
		logger.Infof(ctx, "rejected %s: seat %v is occupied", c.nc.RemoteAddr(), seat)
		return
	}
	s.table.set(seat, c)
	logger.Infof(ctx, "%s seated at %v", c.nc.RemoteAddr(), seat)
	if s.hand != nil {
		spec := s.hand.Spec()
		if s.send(ctx, c, wire.Deal{Type: spec.Type, Leader: spec.Leader, Hand: spec.Hands[seat]}) != nil {
			s.vacate(ctx, seat)
			return
		}
		for i, t := range s.hand.Taken() {
			if s.send(ctx, c, wire.Taken{N: i + 1, Cards: t.Cards, Winner: t.Winner}) != nil {
				s.vacate(ctx, seat)
				return
			}
		}
		if s.prompted {
			if s.sendFrame(ctx, c, s.promptFrame) != nil {
				s.vacate(ctx, seat)
				return
			}
		}
	}
	if s.table.allSeated() {
		s.resume(ctx)
	}
}

// resume restarts play once the table is full again.
func (s *Session) resume(ctx context.Context) {
	if s.hand == nil {
		s.startDeal(ctx)
		return
	}
	if s.prompted {
		// The current player already holds the prompt (possibly from the
		// catch-up burst); only the re-prompt clock restarts.
		s.promptAt = clock.Now(ctx)
	} else {
		s.promptCurrent(ctx)
	}
}

func (s *Session) startDeal(ctx context.Context) {
	spec := s.deals[s.dealIdx]
	s.hand = kierki.NewHandState(spec)
	s.prompted = false
	logger.Infof(ctx, "deal %d of %d: type %v, %v leads", s.dealIdx+1, len(s.deals), spec.Type, spec.Leader)
	for _, seat := range kierki.Seats {
		if c := s.table.get(seat); c != nil {
			if s.send(ctx, c, wire.Deal{Type: spec.Type, Leader: spec.Leader, Hand: spec.Hands[seat]}) != nil {
				s.vacate(ctx, seat)
			}
		}
	}
	if s.table.allSeated() {
		s.promptCurrent(ctx)
	}
}

func (s *Session) promptCurrent(ctx context.Context) {
	var cards []kierki.Card
	for _, p := range s.hand.Plays() {
		cards = append(cards, p.Card)
	}
	s.promptFrame = wire.Trick{N: s.hand.TrickNumber(), Cards: cards}.Encode()
	s.promptAt = clock.Now(ctx)
	s.prompted = true
	seat := s.hand.NextToPlay()
	if c := s.table.get(seat); c != nil {
		if s.sendFrame(ctx, c, s.promptFrame) != nil {
			s.vacate(ctx, seat)
		}
	}
}

func (s *Session) handleSeat(ctx context.Context, seat kierki.Seat, in inbound) {
	c := s.table.get(seat)
	if in.err != nil {
		logger.Infof(ctx, "seat %v: %v", seat, in.err)
		s.vacate(ctx, seat)
		return
	}
	s.rep.Record(ctx, c.nc.RemoteAddr(), c.nc.LocalAddr(), []byte(in.frame))
	t, ok := in.msg.(wire.Trick)
	if !ok || len(t.Cards) != 1 || s.hand == nil {
		logger.Infof(ctx, "seat %v sent unexpected message %q", seat, in.frame)
		s.vacate(ctx, seat)
		return
	}
	if err := s.hand.PlayCard(seat, t.N, t.Cards[0]); err != nil {
		logger.Debugf(ctx, "seat %v: %v", seat, err)
		if s.send(ctx, c, wire.Wrong{N: s.hand.TrickNumber()}) != nil {
			s.vacate(ctx, seat)
		}
		return
	}
	s.prompted = false
	if s.hand.TrickComplete() {
		s.resolveTrick(ctx)
	} else {
		s.promptCurrent(ctx)
	}
}

func (s *Session) resolveTrick(ctx context.Context) {
	n := s.hand.TrickNumber()
	taken, err := s.hand.ResolveTrick()
	if err != nil {
		logger.Errorf(ctx, "resolving trick %d: %v", n, err)
		return
	}
	logger.Debugf(ctx, "trick %d taken by %v", n, taken.Winner)
	s.broadcast(ctx, wire.Taken{N: n, Cards: taken.Cards, Winner: taken.Winner})
	if s.hand.Finished() {
		s.finishDeal(ctx)
	} else if s.table.allSeated() {
		s.promptCurrent(ctx)
	}
}

func (s *Session) finishDeal(ctx context.Context) {
	var score wire.Score
	for _, seat := range kierki.Seats {
		pts := s.hand.Points(seat)
		score.Points[seat] = pts
		s.totals[seat] += pts
	}
	s.broadcast(ctx, score)
	s.broadcast(ctx, wire.Total{Points: s.totals})
	s.hand = nil
	s.prompted = false
	s.dealIdx++
	if s.dealIdx >= len(s.deals) || s.draining {
		logger.Infof(ctx, "tournament complete after %d deals", s.dealIdx)
		s.finished = true
		return
	}
	if s.table.allSeated() {
		s.startDeal(ctx)
	}
}

func (s *Session) handleTick(ctx context.Context) {
	now := clock.Now(ctx)
	for i, c := range s.pending {
		if c != nil && now.Sub(c.acceptedAt) >= s.timeout {
			s.dropPending(ctx, i, errors.New("idle before IAM"))
		}
	}
	if s.prompted && s.table.allSeated() && now.Sub(s.promptAt) >= s.timeout {
		seat := s.hand.NextToPlay()
		logger.Debugf(ctx, "seat %v silent, re-prompting trick %d", seat, s.hand.TrickNumber())
		s.promptAt = now
		if c := s.table.get(seat); c != nil {
			if s.sendFrame(ctx, c, s.promptFrame) != nil {
				s.vacate(ctx, seat)
			}
		}
	}
}

func (s *Session) vacate(ctx context.Context, seat kierki.Seat) {
	if c := s.table.get(seat); c != nil {
		c.close()
		s.table.set(seat, nil)
		logger.Infof(ctx, "seat %v vacated", seat)
	}
}

func (s *Session) broadcast(ctx context.Context, m wire.Message) {
	frame := m.Encode()
	for _, seat := range kierki.Seats {
		if c := s.table.get(seat); c != nil {
			if s.sendFrame(ctx, c, frame) != nil {
				s.vacate(ctx, seat)
			}
		}
	}
}

func (s *Session) send(ctx context.Context, c *conn, m wire.Message) error {
	return s.sendFrame(ctx, c, m.Encode())
}

// sendFrame writes one frame, draining fully before the loop returns to
// its select, which preserves the cross-connection ordering guarantees.
func (s *Session) sendFrame(ctx context.Context, c *conn, frame []byte) error {
	s.rep.Record(ctx, c.nc.LocalAddr(), c.nc.RemoteAddr(), frame)
	if _, err := c.nc.Write(frame); err != nil {
		logger.Debugf(ctx, "write to %s: %v", c.nc.RemoteAddr(), err)
		return err
	}
	return nil
}

func (s *Session) closeAll() error {
	var err error
	if cerr := s.ln.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) {
		err = multierr.Append(err, cerr)
	}
	for _, seat := range kierki.Seats {
		if c := s.table.get(seat); c != nil {
			err = multierr.Append(err, c.close())
			s.table.set(seat, nil)
		}
	}
	for i, c := range s.pending {
		if c != nil {
			err = multierr.Append(err, c.close())
			s.pending[i] = nil
		}
	}
	return err
}
