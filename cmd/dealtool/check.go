// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/jmisiaszek/sik-2/dealfile"
	"github.com/jmisiaszek/sik-2/lib/logger"
)

type checkCmd struct {
	file string
}

func (*checkCmd) Name() string {
	return "check"
}

func (*checkCmd) Usage() string {
	return "check -f <file>"
}

func (*checkCmd) Synopsis() string {
	return "validates a game script and reports its deal count"
}

func (cmd *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.file, "f", "", "game script to validate")
}

func (cmd *checkCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := cmd.execute(ctx); err != nil {
		logger.Errorf(ctx, "%v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (cmd *checkCmd) execute(ctx context.Context) error {
	if cmd.file == "" {
		return fmt.Errorf("missing required -f")
	}
	deals, err := dealfile.Load(cmd.file)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d deals\n", cmd.file, len(deals))
	return nil
}
