// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package health tracks whether the pool is being settled on schedule.
// The tracker is passive, the daemon's housekeeping loop feeds it the
// distribution cursor and the clock-projected phase.
package health

import (
	"sync"
	"time"
)

// Status is the serialized health report.
type Status struct {
	Healthy            bool       `json:"healthy"`
	LedgerReady        bool       `json:"ledgerReady"`
	DistributionCursor uint32     `json:"distributionCursor"`
	ProjectedPhase     uint32     `json:"projectedPhase"`
	LastDistribution   *time.Time `json:"lastDistribution"`
}

// Health judges the pool settled on schedule as long as the distribution
// cursor keeps catching up with the clock-projected phase within the
// tolerance.
type Health struct {
	lock sync.RWMutex

	start            time.Time
	ledgerReady      bool
	cursor           uint32
	projected        uint32
	lastCaughtUp     time.Time
	lastDistribution time.Time
}

func New() *Health {
	return &Health{
		start: time.Now(),
	}
}

// LedgerStatus flags whether the pool ledger is open and initialized.
func (h *Health) LedgerStatus(ready bool) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.ledgerReady = ready
}

// Observe records the distribution cursor and the clock-projected phase.
func (h *Health) Observe(cursor, projected uint32) {
	h.lock.Lock()
	defer h.lock.Unlock()

	now := time.Now()
	if cursor > h.cursor {
		h.lastDistribution = now
	}
	if projected <= cursor {
		h.lastCaughtUp = now
	}
	h.cursor = cursor
	h.projected = projected
}

// Status reports the current health assessment. tolerance is how long
// the pool may stay behind the clock before it is reported unhealthy.
func (h *Health) Status(tolerance time.Duration) (*Status, error) {
	h.lock.RLock()
	defer h.lock.RUnlock()

	ref := h.lastCaughtUp
	if ref.IsZero() {
		ref = h.start
	}
	healthy := h.ledgerReady && time.Since(ref) <= tolerance

	var lastDist *time.Time
	if !h.lastDistribution.IsZero() {
		t := h.lastDistribution
		lastDist = &t
	}
	return &Status{
		Healthy:            healthy,
		LedgerReady:        h.ledgerReady,
		DistributionCursor: h.cursor,
		ProjectedPhase:     h.projected,
		LastDistribution:   lastDist,
	}, nil
}
