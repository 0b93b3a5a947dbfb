// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/jeranaias/michael-tui/internal/model"
)

// PanelState records which expandable panels of one assistant message are
// open. The zero value has everything collapsed.
type PanelState struct {
	// Lens is the selected tab; it only shows when LensOpen is set.
	Lens     model.Lens
	LensOpen bool

	ShowConfidence bool
	ShowSources    bool
}

// ToggleLens opens lens, or collapses it if it is already the open tab.
func (p PanelState) ToggleLens(lens model.Lens) PanelState {
	if p.LensOpen && p.Lens == lens {
		p.LensOpen = false
		return p
	}
	p.Lens = lens
	p.LensOpen = true
	return p
}

// CycleLens opens the next (dir > 0) or previous available lens of msg.
// With no tab open it starts from the first or last tab.
func (p PanelState) CycleLens(msg *model.Message, dir int) PanelState {
	if msg == nil || msg.Lenses == nil {
		return p
	}
	avail := msg.Lenses.Available()
	if len(avail) == 0 {
		return p
	}

	idx := -1
	if p.LensOpen {
		for i, l := range avail {
			if l == p.Lens {
				idx = i
				break
			}
		}
	}

	switch {
	case idx < 0 && dir >= 0:
		idx = 0
	case idx < 0:
		idx = len(avail) - 1
	default:
		idx = (idx + dir + len(avail)) % len(avail)
	}
	p.Lens = avail[idx]
	p.LensOpen = true
	return p
}

// ToggleConfidence flips the confidence panel.
func (p PanelState) ToggleConfidence() PanelState {
	p.ShowConfidence = !p.ShowConfidence
	return p
}

// ToggleSources flips the sources list.
func (p PanelState) ToggleSources() PanelState {
	p.ShowSources = !p.ShowSources
	return p
}
