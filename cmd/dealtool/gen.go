// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/jmisiaszek/sik-2/dealfile"
	"github.com/jmisiaszek/sik-2/kierki"
	"github.com/jmisiaszek/sik-2/lib/logger"
)

type genCmd struct {
	out   string
	deals int
	seed  int64
	types string
}

func (*genCmd) Name() string {
	return "gen"
}

func (*genCmd) Usage() string {
	return "gen -o <file> -n <deals> [-seed s] [-types 1234567]"
}

func (*genCmd) Synopsis() string {
	return "emits a valid random game script"
}

func (cmd *genCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.out, "o", "", "output file; - writes to stdout")
	f.IntVar(&cmd.deals, "n", 1, "number of deals to generate")
	f.Int64Var(&cmd.seed, "seed", 0, "random seed; 0 derives one from the current time")
	f.StringVar(&cmd.types, "types", "1234567", "deal type digits to draw from")
}

func (cmd *genCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := cmd.execute(ctx); err != nil {
		logger.Errorf(ctx, "%v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (cmd *genCmd) execute(ctx context.Context) error {
	if cmd.out == "" {
		return fmt.Errorf("missing required -o")
	}
	var types []kierki.DealType
	for i := 0; i < len(cmd.types); i++ {
		t, err := kierki.ParseDealType(cmd.types[i])
		if err != nil {
			return fmt.Errorf("-types: %w", err)
		}
		types = append(types, t)
	}
	seed := cmd.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	deals, err := dealfile.Generate(rand.New(rand.NewSource(seed)), cmd.deals, types)
	if err != nil {
		return err
	}

	w := os.Stdout
	if cmd.out != "-" {
		f, err := os.Create(cmd.out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := dealfile.Write(w, deals); err != nil {
		return err
	}
	logger.Debugf(ctx, "wrote %d deals (seed %d)", len(deals), seed)
	return nil
}
