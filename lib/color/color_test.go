// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package color

import (
	"fmt"
	"testing"
)

func TestColors(t *testing.T) {
	c := NewColor(ColorAlways)
	colorFns := []Colorfn{c.Red, c.Green, c.Yellow, c.Blue, c.Magenta, c.Cyan, c.DefaultColor}
	colorCodes := []ColorCode{RedFg, GreenFg, YellowFg, BlueFg, MagentaFg, CyanFg, DefaultFg}

	for i, code := range colorCodes {
		str := fmt.Sprintf("test string: %d", i)
		colored := colorFns[i]("test string: %d", i)
		withColor := c.WithColor(code, "test string: %d", i)
		expected := fmt.Sprintf("%v%vm%v%v", escape, code, str, clear)
		if code == DefaultFg {
			expected = str
		}
		if colored != expected {
			t.Fatalf("expected string %q, got %q", expected, colored)
		}
		if withColor != expected {
			t.Fatalf("expected string %q, got %q", expected, withColor)
		}
	}
}

func TestColorsDisabled(t *testing.T) {
	c := NewColor(ColorNever)
	colorFns := []Colorfn{c.Red, c.Green, c.Yellow, c.Blue, c.Magenta, c.Cyan, c.DefaultColor}

	for i, fn := range colorFns {
		str := fmt.Sprintf("test string: %d", i)
		if colored := fn("test string: %d", i); colored != str {
			t.Fatalf("expected string %q, got %q", str, colored)
		}
	}
	if c.Enabled() {
		t.Fatalf("ColorNever must yield a disabled Color")
	}
}
