// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedmap

// StackedMap is a map of maps arranged as a stack. Reads fall through
// from the top level down to the backing source, writes land on the
// top level. Popping a level reverts every Put made since its Push.
type StackedMap struct {
	src       MapGetter
	levels    []*level
	revisions map[any][]int // per key, the ascending level indexes holding a write
}

type level struct {
	kvs     map[any]any
	journal []journalEntry
}

type journalEntry struct {
	key   any
	value any
}

// MapGetter reads through to the backing data source.
type MapGetter func(key any) (value any, exist bool, err error)

// New creates a StackedMap reading through to src,
// opened with a single base level.
func New(src MapGetter) *StackedMap {
	return &StackedMap{
		src:       src,
		levels:    []*level{newLevel()},
		revisions: make(map[any][]int),
	}
}

func newLevel() *level {
	return &level{kvs: make(map[any]any)}
}

// Depth returns the count of levels.
func (sm *StackedMap) Depth() int {
	return len(sm.levels)
}

// Push opens a new level and returns the depth before the push.
func (sm *StackedMap) Push() int {
	sm.levels = append(sm.levels, newLevel())
	return len(sm.levels) - 1
}

// Pop drops the top level, reverting every Put since the matching Push.
func (sm *StackedMap) Pop() {
	top := sm.levels[len(sm.levels)-1]
	for key := range top.kvs {
		revs := sm.revisions[key]
		if len(revs) == 1 {
			delete(sm.revisions, key)
		} else {
			sm.revisions[key] = revs[:len(revs)-1]
		}
	}
	sm.levels = sm.levels[:len(sm.levels)-1]
}

// PopTo drops levels until the depth reaches depth.
func (sm *StackedMap) PopTo(depth int) {
	for len(sm.levels) > depth {
		sm.Pop()
	}
}

// Get reads the latest value written for key, falling through to the
// backing source. The boolean reports whether the key was found.
func (sm *StackedMap) Get(key any) (any, bool, error) {
	if revs, ok := sm.revisions[key]; ok {
		lvl := sm.levels[revs[len(revs)-1]]
		if v, ok := lvl.kvs[key]; ok {
			return v, true, nil
		}
	}
	return sm.src(key)
}

// Put writes key/value on the top level.
// It panics when every level has been popped.
func (sm *StackedMap) Put(key, value any) {
	top := sm.levels[len(sm.levels)-1]
	top.kvs[key] = value
	top.journal = append(top.journal, journalEntry{key: key, value: value})

	// track which level holds the write, so Get skips the scan.
	// rewrites on the same level keep a single entry, Pop removes
	// one entry per distinct key.
	rev := len(sm.levels) - 1
	revs := sm.revisions[key]
	if len(revs) == 0 || revs[len(revs)-1] != rev {
		sm.revisions[key] = append(revs, rev)
	}
}

// Journal replays every surviving Put in order, oldest first.
// The replay stops early when cb returns false.
func (sm *StackedMap) Journal(cb func(key, value any) bool) {
	for _, lvl := range sm.levels {
		for _, entry := range lvl.journal {
			if !cb(entry.key, entry.value) {
				return
			}
		}
	}
}
