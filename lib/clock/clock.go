// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package clock exposes the current time through a context so that tests can
// substitute a fake.
package clock

import (
	"context"
	"sync"
	"time"
)

type clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type clockKeyType string

// clockKey is the key we use to associate a clock with a Context.
const clockKey = clockKeyType("clock")

// Now returns the current time for the clock associated with the given
// context, or the real current time if there is none. Code whose timing is
// exercised in tests should call this instead of time.Now.
func Now(ctx context.Context) time.Time {
	if c, ok := ctx.Value(clockKey).(clock); ok && c != nil {
		return c.Now()
	}
	return time.Now()
}

// After returns time.After() or the equivalent for the clock associated with
// the given context.
func After(ctx context.Context, d time.Duration) <-chan time.Time {
	if c, ok := ctx.Value(clockKey).(clock); ok && c != nil {
		return c.After(d)
	}
	return time.After(d)
}

// NewContext returns a new context with the given clock attached.
//
// This should generally only be used in tests; production code should always
// use the real time.
func NewContext(ctx context.Context, c clock) context.Context {
	return context.WithValue(ctx, clockKey, c)
}

type timer struct {
	endTime time.Time
	ch      chan time.Time
}

// FakeClock provides support for mocking the current time in tests. Unlike
// the real clock it only moves when Advance is called. Any number of timers
// may be outstanding; Advance fires every timer whose deadline has been
// reached.
type FakeClock struct {
	mu          sync.Mutex
	now         time.Time
	timers      []*timer
	afterCalled chan struct{}
}

func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Now(), afterCalled: make(chan struct{}, 1)}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &timer{c.now.Add(d), make(chan time.Time, 1)}
	c.timers = append(c.timers, t)
	select {
	case c.afterCalled <- struct{}{}:
	default:
	}
	return t.ch
}

// Advance moves the fake time forward by d and fires every timer that is due.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	remaining := c.timers[:0]
	for _, t := range c.timers {
		if t.endTime.After(c.now) {
			remaining = append(remaining, t)
			continue
		}
		t.ch <- c.now
	}
	c.timers = remaining
}

// AfterCalledChan returns a channel that receives after a call to After(),
// letting tests wait until the code under test has armed its timer.
func (c *FakeClock) AfterCalledChan() chan struct{} {
	return c.afterCalled
}
