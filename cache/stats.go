// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import "sync/atomic"

// Stats counts cache lookups and detects hit-rate movement.
type Stats struct {
	hit, miss atomic.Int64
	rateMilli atomic.Int32
}

// Hit records a hit and returns the running hit count.
func (s *Stats) Hit() int64 { return s.hit.Add(1) }

// Miss records a miss and returns the running miss count.
func (s *Stats) Miss() int64 { return s.miss.Add(1) }

// Snapshot reports hits, misses and the hit rate, and whether the rate
// moved since the last snapshot. Periodic reporters skip logging while
// the flag stays false.
func (s *Stats) Snapshot() (hit, miss int64, rate float64, changed bool) {
	hit = s.hit.Load()
	miss = s.miss.Load()
	if lookups := hit + miss; lookups > 0 {
		rate = float64(hit) / float64(lookups)
	}
	milli := int32(rate * 1000)
	changed = s.rateMilli.Swap(milli) != milli
	return
}
