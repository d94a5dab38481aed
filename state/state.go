// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/stakepool/kv"
	"github.com/vechain/stakepool/stackedmap"
	"github.com/vechain/stakepool/stakepool"
)

// Error wraps any failure raised while accessing state.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// State manages the world state of the ledger.
type State struct {
	store kv.Store
	cache map[storageKey]rlp.RawValue // cache of committed slots
	sm    *stackedmap.StackedMap      // keeps revisions of slot writes
}

// New builds a state bound to the given store.
func New(store kv.Store) *State {
	state := State{
		store: store,
		cache: make(map[storageKey]rlp.RawValue),
	}

	state.sm = stackedmap.New(func(key any) (any, bool, error) {
		return state.cacheGetter(key)
	})
	return &state
}

// Checkout checkouts to a fresh state on the same store,
// discarding all uncommitted changes of this one.
func (s *State) Checkout() *State {
	return New(s.store)
}

// cacheGetter implements stackedmap.MapGetter.
func (s *State) cacheGetter(key any) (value any, exist bool, err error) {
	switch k := key.(type) {
	case storageKey:
		v, err := s.getCachedStorage(k)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	}
	panic(fmt.Errorf("unexpected key type %+v", key))
}

func (s *State) getCachedStorage(k storageKey) (rlp.RawValue, error) {
	if v, ok := s.cache[k]; ok {
		metricSlotCounter().AddWithLabel(1, map[string]string{"type": "read", "target": "cache"})
		return v, nil
	}
	data, err := s.store.Get(k.slot())
	if err != nil {
		if !s.store.IsNotFound(err) {
			return nil, err
		}
		// treat missing slots as empty values
		data = nil
	}
	metricSlotCounter().AddWithLabel(1, map[string]string{"type": "read", "target": "store"})
	s.cache[k] = data
	return data, nil
}

// GetStorage loads the 32-byte value stored under (addr, key).
func (s *State) GetStorage(addr stakepool.Address, key stakepool.Bytes32) (stakepool.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return stakepool.Bytes32{}, &Error{err}
	}
	if len(raw) == 0 {
		return stakepool.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return stakepool.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// list kinds hold composite payloads, surface them as a hash
		return stakepool.Blake2b(raw), nil
	}
	return stakepool.BytesToBytes32(content), nil
}

// SetStorage writes a 32-byte value under (addr, key). A zero value
// clears the slot.
func (s *State) SetStorage(addr stakepool.Address, key, value stakepool.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetRawStorage loads the rlp raw value stored under (addr, key).
func (s *State) GetRawStorage(addr stakepool.Address, key stakepool.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data.(rlp.RawValue), nil
}

// SetRawStorage writes an rlp raw value under (addr, key).
func (s *State) SetRawStorage(addr stakepool.Address, key stakepool.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage stores the value rendered by enc under (addr, key).
func (s *State) EncodeStorage(addr stakepool.Address, key stakepool.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage loads the value under (addr, key) and hands it to dec.
// Missing slots decode from an empty byte slice.
func (s *State) DecodeStorage(addr stakepool.Address, key stakepool.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return &Error{err}
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint marks the current state and returns its revision.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo rolls back all writes made after the given revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage makes a stage object to commit all cumulative changes.
// The state must be checked out or discarded after the stage is
// committed, its journal still holds the staged writes.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey]rlp.RawValue)

	// traverse journal to collect the effective slot writes
	s.sm.Journal(func(k, v any) bool {
		switch key := k.(type) {
		case storageKey:
			changes[key] = v.(rlp.RawValue)
		}
		return true
	})

	return &Stage{
		store:   s.store,
		changes: changes,
	}
}

// storageKey identifies one storage slot.
type storageKey struct {
	addr stakepool.Address
	key  stakepool.Bytes32
}

// slot renders the underlying store key.
func (k storageKey) slot() []byte {
	b := make([]byte, 0, stakepool.AddressLength+32)
	return append(append(b, k.addr.Bytes()...), k.key.Bytes()...)
}
