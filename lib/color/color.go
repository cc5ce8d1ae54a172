// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package color formats strings with ANSI escape codes, falling back to
// plain text when the output is not a terminal.
package color

import (
	"fmt"
	"os"

	"github.com/jmisiaszek/sik-2/lib/isatty"
)

// Colorfn is the signature shared by every per-color formatter.
type Colorfn func(format string, a ...any) string

const (
	escape = "\033["
	clear  = escape + "0m"
)

// ColorCode is an ANSI foreground color code.
type ColorCode int

const (
	RedFg ColorCode = iota + 31
	GreenFg
	YellowFg
	BlueFg
	MagentaFg
	CyanFg
)

// DefaultFg leaves the terminal's default foreground untouched.
const DefaultFg ColorCode = 39

// Color renders formatted strings in a fixed palette. Implementations are
// either colorized or monochrome; callers hold one and never branch on
// whether color is on.
type Color interface {
	Red(format string, a ...any) string
	Green(format string, a ...any) string
	Yellow(format string, a ...any) string
	Blue(format string, a ...any) string
	Magenta(format string, a ...any) string
	Cyan(format string, a ...any) string
	DefaultColor(format string, a ...any) string
	WithColor(code ColorCode, format string, a ...any) string
	Enabled() bool
}

type color struct{}

func (color) Red(format string, a ...any) string     { return colorString(RedFg, format, a...) }
func (color) Green(format string, a ...any) string   { return colorString(GreenFg, format, a...) }
func (color) Yellow(format string, a ...any) string  { return colorString(YellowFg, format, a...) }
func (color) Blue(format string, a ...any) string    { return colorString(BlueFg, format, a...) }
func (color) Magenta(format string, a ...any) string { return colorString(MagentaFg, format, a...) }
func (color) Cyan(format string, a ...any) string    { return colorString(CyanFg, format, a...) }
func (color) DefaultColor(format string, a ...any) string {
	return colorString(DefaultFg, format, a...)
}
func (color) WithColor(code ColorCode, format string, a ...any) string {
	return colorString(code, format, a...)
}
func (color) Enabled() bool { return true }

func colorString(c ColorCode, format string, a ...any) string {
	if c == DefaultFg {
		return fmt.Sprintf(format, a...)
	}
	return fmt.Sprintf("%v%vm%v%v", escape, c, fmt.Sprintf(format, a...), clear)
}

type monochrome struct{}

func (monochrome) Red(format string, a ...any) string     { return fmt.Sprintf(format, a...) }
func (monochrome) Green(format string, a ...any) string   { return fmt.Sprintf(format, a...) }
func (monochrome) Yellow(format string, a ...any) string  { return fmt.Sprintf(format, a...) }
func (monochrome) Blue(format string, a ...any) string    { return fmt.Sprintf(format, a...) }
func (monochrome) Magenta(format string, a ...any) string { return fmt.Sprintf(format, a...) }
func (monochrome) Cyan(format string, a ...any) string    { return fmt.Sprintf(format, a...) }
func (monochrome) DefaultColor(format string, a ...any) string {
	return fmt.Sprintf(format, a...)
}
func (monochrome) WithColor(_ ColorCode, format string, a ...any) string {
	return fmt.Sprintf(format, a...)
}
func (monochrome) Enabled() bool { return false }

// EnableColor selects between never, auto, and always. It implements
// flag.Value so it can be registered directly with -color.
type EnableColor int

const (
	ColorNever EnableColor = iota
	ColorAuto
	ColorAlways
)

func isColorAvailable() bool {
	switch os.Getenv("TERM") {
	case "dumb", "":
		return false
	}
	return isatty.IsTerminal()
}

// NewColor returns a colorized or monochrome Color per the given policy.
func NewColor(enableColor EnableColor) Color {
	on := enableColor == ColorAlways
	if enableColor == ColorAuto {
		on = isColorAvailable()
	}
	if on {
		return color{}
	}
	return monochrome{}
}

func (ec *EnableColor) String() string {
	switch *ec {
	case ColorNever:
		return "never"
	case ColorAuto:
		return "auto"
	case ColorAlways:
		return "always"
	}
	return ""
}

func (ec *EnableColor) Set(s string) error {
	switch s {
	case "never":
		*ec = ColorNever
	case "auto":
		*ec = ColorAuto
	case "always":
		*ec = ColorAlways
	default:
		return fmt.Errorf("%s is not a valid color value", s)
	}
	return nil
}
