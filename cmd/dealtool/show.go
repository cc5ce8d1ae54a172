// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/jmisiaszek/sik-2/client"
	"github.com/jmisiaszek/sik-2/dealfile"
	"github.com/jmisiaszek/sik-2/kierki"
	"github.com/jmisiaszek/sik-2/lib/logger"
)

type showCmd struct {
	file string
	play bool
}

func (*showCmd) Name() string {
	return "show"
}

func (*showCmd) Usage() string {
	return "show -f <file> [-play]"
}

func (*showCmd) Synopsis() string {
	return "pretty-prints a game script, optionally simulating the play"
}

func (cmd *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.file, "f", "", "game script to show")
	f.BoolVar(&cmd.play, "play", false, "play every seat with the automatic strategy")
}

func (cmd *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := cmd.execute(ctx); err != nil {
		logger.Errorf(ctx, "%v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (cmd *showCmd) execute(ctx context.Context) error {
	if cmd.file == "" {
		return fmt.Errorf("missing required -f")
	}
	deals, err := dealfile.Load(cmd.file)
	if err != nil {
		return err
	}
	var totals [4]int
	for i, spec := range deals {
		fmt.Printf("deal %d: type %v, %v leads\n", i+1, spec.Type, spec.Leader)
		for _, seat := range kierki.Seats {
			fmt.Printf("  %v: %s\n", seat, kierki.FormatCards(spec.Hands[seat]))
		}
		if !cmd.play {
			continue
		}
		if err := simulate(spec, &totals); err != nil {
			return fmt.Errorf("deal %d: %w", i+1, err)
		}
	}
	return nil
}

// simulate plays all four seats under the automatic strategy, printing
// the same per-trick and score information the server would emit.
func simulate(spec kierki.DealSpec, totals *[4]int) error {
	hand := kierki.NewHandState(spec)
	for !hand.Finished() {
		seat := hand.NextToPlay()
		var played []kierki.Card
		for _, p := range hand.Plays() {
			played = append(played, p.Card)
		}
		card, err := client.ChooseCard(hand.Remaining(seat), played, nil)
		if err != nil {
			return fmt.Errorf("trick %d, seat %v: %w", hand.TrickNumber(), seat, err)
		}
		if err := hand.PlayCard(seat, hand.TrickNumber(), card); err != nil {
			return fmt.Errorf("trick %d, seat %v plays %v: %w", hand.TrickNumber(), seat, card, err)
		}
		if !hand.TrickComplete() {
			continue
		}
		n := hand.TrickNumber()
		taken, err := hand.ResolveTrick()
		if err != nil {
			return err
		}
		fmt.Printf("  trick %d: %s taken by %v\n", n, kierki.FormatCards(taken.Cards[:]), taken.Winner)
	}
	for _, seat := range kierki.Seats {
		totals[seat] += hand.Points(seat)
	}
	fmt.Printf("  score: ")
	for _, seat := range kierki.Seats {
		fmt.Printf("%v%d", seat, hand.Points(seat))
	}
	fmt.Printf("\n  total: ")
	for _, seat := range kierki.Seats {
		fmt.Printf("%v%d", seat, totals[seat])
	}
	fmt.Println()
	return nil
}
