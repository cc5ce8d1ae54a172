// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/jmisiaszek/sik-2/dealfile"
	"github.com/jmisiaszek/sik-2/lib/color"
	"github.com/jmisiaszek/sik-2/lib/command"
	"github.com/jmisiaszek/sik-2/lib/logger"
	"github.com/jmisiaszek/sik-2/report"
	"github.com/jmisiaszek/sik-2/server"
)

var (
	port     int
	timeout  int
	gameFile string
	level    = logger.InfoLevel
	colors   = color.ColorAuto
)

func init() {
	flag.IntVar(&port, "p", 0, "port to listen on; 0 lets the kernel choose")
	flag.IntVar(&timeout, "t", 5, "inactivity timeout in seconds")
	flag.StringVar(&gameFile, "f", "", "game script file (required)")
	flag.Var(&level, "level", "output verbosity, can be fatal, error, warning, info, debug or trace")
	flag.Var(&colors, "color", "use color in output, can be never, auto, always")
}

func main() {
	flag.Parse()

	l := logger.NewLogger(level, color.NewColor(colors), os.Stderr, os.Stderr, "server ")
	l.SetFlags(logger.Ltime | logger.Lmicroseconds | logger.Lshortfile)
	ctx := logger.WithLogger(context.Background(), l)
	ctx = command.CancelOnSignals(ctx, syscall.SIGINT, syscall.SIGTERM)

	if err := execute(ctx); err != nil {
		logger.Fatalf(ctx, "%v", err)
	}
}

func execute(ctx context.Context) error {
	if gameFile == "" {
		flag.Usage()
		return fmt.Errorf("missing required -f")
	}
	if flag.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q", flag.Arg(0))
	}
	if timeout <= 0 {
		return fmt.Errorf("-t must be positive, got %d", timeout)
	}
	if port < 0 || port > 65535 {
		return fmt.Errorf("%d is not a valid port number", port)
	}

	deals, err := dealfile.Load(gameFile)
	if err != nil {
		return err
	}
	logger.Debugf(ctx, "loaded %d deals from %s", len(deals), gameFile)

	ln, err := server.Listen(port)
	if err != nil {
		return err
	}
	logger.Infof(ctx, "listening on port %d", server.BoundPort(ln))

	sess := server.New(ln, deals, time.Duration(timeout)*time.Second, report.NewWriter(os.Stdout))
	return sess.Run(ctx)
}
