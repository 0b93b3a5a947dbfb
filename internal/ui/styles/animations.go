// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Timing constants for the splash and typing indicator.
const (
	// SplashDuration is how long the splash stays up before the chat appears.
	SplashDuration = 4500 * time.Millisecond

	// SplashFadeSteps is the number of frames the taglines take to appear.
	SplashFadeSteps = 6

	// SplashFrame is the delay between splash frames.
	SplashFrame = 120 * time.Millisecond
)

// TypingSpinner is the three-dot pulse shown while Michael is thinking.
var TypingSpinner = spinner.Spinner{
	Frames: []string{"·  ", "·· ", "···", " ··", "  ·", "   "},
	FPS:    time.Second / 6,
}

// RevealTagline returns the prefix of s visible at frame out of steps,
// used to type the splash taglines in.
func RevealTagline(s string, frame, steps int) string {
	if steps <= 0 || frame >= steps {
		return s
	}
	if frame <= 0 {
		return ""
	}
	runes := []rune(s)
	n := len(runes) * frame / steps
	return string(runes[:n])
}
