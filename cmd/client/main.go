// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"syscall"

	"github.com/jmisiaszek/sik-2/client"
	"github.com/jmisiaszek/sik-2/kierki"
	"github.com/jmisiaszek/sik-2/lib/color"
	"github.com/jmisiaszek/sik-2/lib/command"
	"github.com/jmisiaszek/sik-2/lib/logger"
	"github.com/jmisiaszek/sik-2/report"
)

var (
	host      string
	port      int
	forceIPv4 bool
	forceIPv6 bool
	automatic bool
	seatFlags [4]bool
	level     = logger.InfoLevel
	colors    = color.ColorAuto
)

func init() {
	flag.StringVar(&host, "h", "", "server host (required)")
	flag.IntVar(&port, "p", 0, "server port (required)")
	flag.BoolVar(&forceIPv4, "4", false, "force IPv4")
	flag.BoolVar(&forceIPv6, "6", false, "force IPv6")
	flag.BoolVar(&automatic, "a", false, "play automatically instead of interactively")
	for _, seat := range kierki.Seats {
		seat := seat
		flag.BoolVar(&seatFlags[seat], seat.String(), false, fmt.Sprintf("take seat %v", seat))
	}
	flag.Var(&level, "level", "output verbosity, can be fatal, error, warning, info, debug or trace")
	flag.Var(&colors, "color", "use color in output, can be never, auto, always")
}

func main() {
	flag.Parse()

	l := logger.NewLogger(level, color.NewColor(colors), os.Stderr, os.Stderr, "client ")
	l.SetFlags(logger.Ltime | logger.Lmicroseconds | logger.Lshortfile)
	ctx := logger.WithLogger(context.Background(), l)
	ctx = command.CancelOnSignals(ctx, syscall.SIGINT, syscall.SIGTERM)

	if err := execute(ctx); err != nil {
		logger.Fatalf(ctx, "%v", err)
	}
}

func execute(ctx context.Context) error {
	if flag.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q", flag.Arg(0))
	}
	if host == "" {
		flag.Usage()
		return fmt.Errorf("missing required -h")
	}
	if port <= 0 || port > 65535 {
		return fmt.Errorf("%d is not a valid port number", port)
	}
	if forceIPv4 && forceIPv6 {
		return fmt.Errorf("-4 and -6 are mutually exclusive")
	}
	var seat kierki.Seat
	seats := 0
	for _, s := range kierki.Seats {
		if seatFlags[s] {
			seat = s
			seats++
		}
	}
	if seats != 1 {
		return fmt.Errorf("exactly one of -N, -E, -S, -W is required")
	}

	network := "tcp"
	if forceIPv4 {
		network = "tcp4"
	} else if forceIPv6 {
		network = "tcp6"
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, network, net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return fmt.Errorf("cannot connect to the server: %w", err)
	}
	logger.Infof(ctx, "connected to %s", conn.RemoteAddr())

	opts := client.Options{Seat: seat, Automatic: automatic, Color: color.NewColor(colors)}
	if automatic {
		opts.Report = report.NewWriter(os.Stdout)
	}
	return client.New(conn, opts).Run(ctx)
}
