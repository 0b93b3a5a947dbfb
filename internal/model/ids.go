// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"sync/atomic"
	"time"
)

// IDGenerator produces message identifiers that are unique within a session.
type IDGenerator interface {
	Next() string
}

// Clock returns the current time. Tests inject a fixed clock.
type Clock func() time.Time

// SequenceGenerator combines a millisecond timestamp with a counter so that
// messages created within the same millisecond still get distinct IDs.
type SequenceGenerator struct {
	now     Clock
	counter atomic.Uint64
}

// NewSequenceGenerator creates a generator. A nil clock uses time.Now.
func NewSequenceGenerator(now Clock) *SequenceGenerator {
	if now == nil {
		now = time.Now
	}
	return &SequenceGenerator{now: now}
}

// Next returns the next ID in the form msg_<unixms>_<counter>.
func (g *SequenceGenerator) Next() string {
	n := g.counter.Add(1)
	return fmt.Sprintf("msg_%d_%d", g.now().UnixMilli(), n)
}
