// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package phase projects settled reward phases from wall clock time.
//
// A phase settles when a full duration elapses past the last recorded
// boundary. The projection is a pure read; the physical phase counter
// only advances when a distribution is recorded.
package phase

import (
	"math"
	"time"
)

// Settled returns the highest phase index fully elapsed at the given time.
//
// A zero now substitutes the wall clock. An uninitialized clock, one with
// no boundary or no duration yet, always reads phase zero. Time before the
// boundary aligns down to it, so the projection never runs behind current.
func Settled(now, lastBoundary, duration uint64, current uint32) uint32 {
	if lastBoundary == 0 || duration == 0 {
		return 0
	}
	if now == 0 {
		now = uint64(time.Now().Unix())
	}
	aligned := now - now%duration
	if aligned <= lastBoundary {
		return current
	}
	elapsed := (aligned - lastBoundary) / duration
	if projected := uint64(current) + elapsed; projected <= math.MaxUint32 {
		return uint32(projected)
	}
	return math.MaxUint32
}

// Boundary aligns a timestamp down to the start of its phase window.
func Boundary(now, duration uint64) uint64 {
	if duration == 0 {
		return now
	}
	return now - now%duration
}
