// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package server implements the tournament server: the dual-stack
// listener, seat admission, the trick referee and the single-owner
// session loop that multiplexes the four seats and the pending
// connections.
package server

import (
	"fmt"
	"net"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

const listenBacklog = 5

// Listen opens a TCP listener on the given port that accepts both IPv4
// and IPv6 peers through a single AF_INET6 socket with IPV6_V6ONLY
// cleared. Port 0 lets the kernel choose; the bound port is available
// from the listener's Addr.
func Listen(port int) (net.Listener, error) {
	syscall.ForkLock.RLock()
	fd, err := syscall.Socket(syscall.AF_INET6, syscall.SOCK_STREAM, 0)
	if err == nil {
		unix.CloseOnExec(fd)
	}
	syscall.ForkLock.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("socket: %w", err)
	}

	if err := syscall.SetsockoptInt(fd, syscall.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("setsockopt SO_REUSEADDR: %w", err)
	}
	// Accept IPv4-mapped peers on the same socket.
	if err := syscall.SetsockoptInt(fd, unix.IPPROTO_IPV6, unix.IPV6_V6ONLY, 0); err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("setsockopt IPV6_V6ONLY: %w", err)
	}

	if err := syscall.Bind(fd, &syscall.SockaddrInet6{Port: port}); err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("bind port %d: %w", port, err)
	}
	if err := syscall.Listen(fd, listenBacklog); err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("listen: %w", err)
	}

	f := os.NewFile(uintptr(fd), "listener")
	ln, err := net.FileListener(f)
	f.Close()
	if err != nil {
		return nil, err
	}
	return ln, nil
}

// BoundPort returns the port the listener is bound to.
func BoundPort(ln net.Listener) int {
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}
