// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/stakepool/kv"
)

// Stage abstracts changes collected from a state, ready to be committed.
type Stage struct {
	store   kv.Store
	changes map[storageKey]rlp.RawValue
}

// Len returns the count of changed slots.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Commit writes all changes into the underlying store in one batch.
// Slots set to empty values are deleted from the store.
func (s *Stage) Commit() error {
	bulk := s.store.Bulk()
	for k, v := range s.changes {
		if len(v) == 0 {
			if err := bulk.Delete(k.slot()); err != nil {
				return &Error{err}
			}
			continue
		}
		if err := bulk.Put(k.slot(), v); err != nil {
			return &Error{err}
		}
	}
	if err := bulk.Write(); err != nil {
		return &Error{err}
	}
	metricSlotCounter().AddWithLabel(int64(len(s.changes)), map[string]string{"type": "write", "target": "store"})
	return nil
}
