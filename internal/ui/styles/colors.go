// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// SURFACES
// =============================================================================

// Background - Behind everything
var Background = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#000000"}

// Surface - Panels and the input bar
var Surface = lipgloss.AdaptiveColor{Light: "#F4F4F4", Dark: "#0A0A0A"}

// SurfaceElevated - Bubbles and pills
var SurfaceElevated = lipgloss.AdaptiveColor{Light: "#EBEBEB", Dark: "#141414"}

// Border - Glass edges
var Border = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#222222"}

// BorderFocus - Focused glass edges
var BorderFocus = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#4A4A4A"}

// =============================================================================
// TEXT
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#111111", Dark: "#F0F0F0"}

// TextSecondary - Labels
var TextSecondary = lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"}

// TextDim - Hints and metadata
var TextDim = lipgloss.AdaptiveColor{Light: "#808080", Dark: "#707070"}

// Accent - Title glow and active tabs
var Accent = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}

// =============================================================================
// SEMANTIC
// =============================================================================

// Confident - Header of the confident claims list
var Confident = lipgloss.AdaptiveColor{Light: "#2F855A", Dark: "#8AE6A2"}

// Uncertain - Header of the uncertain claims list
var Uncertain = lipgloss.AdaptiveColor{Light: "#B7791F", Dark: "#FFCC6E"}

// Error - Failed replies
var Error = lipgloss.AdaptiveColor{Light: "#C53030", Dark: "#FF8A8A"}

// Link - Clickable sources
var Link = lipgloss.AdaptiveColor{Light: "#2B6CB0", Dark: "#8AC4FF"}
