// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package authority maintains the registry of operators entitled to
// fund reward distributions and administer the pool.
package authority

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/stakepool/stakepool"
	"github.com/vechain/stakepool/state"
)

var (
	headKey = stakepool.Blake2b([]byte("head"))
	tailKey = stakepool.Blake2b([]byte("tail"))
)

// Authority manages the doubly linked registry of operators.
type Authority struct {
	addr  stakepool.Address
	state *state.State
}

// New create a new instance.
func New(addr stakepool.Address, state *state.State) *Authority {
	return &Authority{addr, state}
}

func (a *Authority) getEntry(operator stakepool.Address) (*entry, error) {
	var entry entry
	if err := a.state.DecodeStorage(a.addr, stakepool.BytesToBytes32(operator[:]), func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &entry)
	}); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (a *Authority) setEntry(operator stakepool.Address, entry *entry) error {
	return a.state.EncodeStorage(a.addr, stakepool.BytesToBytes32(operator[:]), func() ([]byte, error) {
		if entry.IsEmpty() {
			return nil, nil
		}
		return rlp.EncodeToBytes(entry)
	})
}

func (a *Authority) getAddressPtr(key stakepool.Bytes32) (addr *stakepool.Address, err error) {
	err = a.state.DecodeStorage(a.addr, key, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &addr)
	})
	return
}

func (a *Authority) setAddressPtr(key stakepool.Bytes32, addr *stakepool.Address) error {
	return a.state.EncodeStorage(a.addr, key, func() ([]byte, error) {
		if addr == nil {
			return nil, nil
		}
		return rlp.EncodeToBytes(addr)
	})
}

// Get returns the registration of the given operator.
func (a *Authority) Get(operator stakepool.Address) (listed bool, identity stakepool.Bytes32, active bool, err error) {
	var entry *entry
	if entry, err = a.getEntry(operator); err != nil {
		return
	}
	if entry.IsLinked() {
		return true, entry.Identity, entry.Active, nil
	}
	// if it's the only operator, IsLinked will be false.
	// check whether it's the head.
	var ptr *stakepool.Address
	if ptr, err = a.getAddressPtr(headKey); err != nil {
		return
	}
	listed = ptr != nil && *ptr == operator
	return listed, entry.Identity, entry.Active, nil
}

// IsActive reports whether the operator is listed and active.
func (a *Authority) IsActive(operator stakepool.Address) (bool, error) {
	listed, _, active, err := a.Get(operator)
	if err != nil {
		return false, err
	}
	return listed && active, nil
}

// Add registers a new operator at the tail of the registry.
func (a *Authority) Add(operator stakepool.Address, identity stakepool.Bytes32) (bool, error) {
	entry, err := a.getEntry(operator)
	if err != nil {
		return false, err
	}
	if !entry.IsEmpty() {
		return false, nil
	}

	entry.Identity = identity
	entry.Active = true // defaults to active

	tailPtr, err := a.getAddressPtr(tailKey)
	if err != nil {
		return false, err
	}
	entry.Prev = tailPtr

	if err := a.setAddressPtr(tailKey, &operator); err != nil {
		return false, err
	}
	if tailPtr == nil {
		if err := a.setAddressPtr(headKey, &operator); err != nil {
			return false, err
		}
	} else {
		tailEntry, err := a.getEntry(*tailPtr)
		if err != nil {
			return false, err
		}
		tailEntry.Next = &operator
		if err := a.setEntry(*tailPtr, tailEntry); err != nil {
			return false, err
		}
	}

	if err := a.setEntry(operator, entry); err != nil {
		return false, err
	}
	return true, nil
}

// Revoke removes the operator from the registry.
// The entry is not erased, but unlisted and set inactive.
func (a *Authority) Revoke(operator stakepool.Address) (bool, error) {
	listed, _, _, err := a.Get(operator)
	if err != nil {
		return false, err
	}
	if !listed {
		return false, nil
	}
	entry, err := a.getEntry(operator)
	if err != nil {
		return false, err
	}

	if entry.Prev == nil {
		if err := a.setAddressPtr(headKey, entry.Next); err != nil {
			return false, err
		}
	} else {
		prevEntry, err := a.getEntry(*entry.Prev)
		if err != nil {
			return false, err
		}
		prevEntry.Next = entry.Next
		if err := a.setEntry(*entry.Prev, prevEntry); err != nil {
			return false, err
		}
	}

	if entry.Next == nil {
		if err := a.setAddressPtr(tailKey, entry.Prev); err != nil {
			return false, err
		}
	} else {
		nextEntry, err := a.getEntry(*entry.Next)
		if err != nil {
			return false, err
		}
		nextEntry.Prev = entry.Prev
		if err := a.setEntry(*entry.Next, nextEntry); err != nil {
			return false, err
		}
	}

	entry.Next = nil
	entry.Prev = nil     // unlist
	entry.Active = false // and set to inactive
	if err := a.setEntry(operator, entry); err != nil {
		return false, err
	}
	return true, nil
}

// Update flips the active status of a listed operator.
func (a *Authority) Update(operator stakepool.Address, active bool) (bool, error) {
	listed, _, _, err := a.Get(operator)
	if err != nil {
		return false, err
	}
	if !listed {
		return false, nil
	}
	entry, err := a.getEntry(operator)
	if err != nil {
		return false, err
	}
	entry.Active = active
	if err := a.setEntry(operator, entry); err != nil {
		return false, err
	}
	return true, nil
}

// AllOperators lists all registered operators in registration order.
func (a *Authority) AllOperators() ([]*Operator, error) {
	ptr, err := a.getAddressPtr(headKey)
	if err != nil {
		return nil, err
	}
	var operators []*Operator
	for ptr != nil {
		entry, err := a.getEntry(*ptr)
		if err != nil {
			return nil, err
		}
		operators = append(operators, &Operator{
			Address:  *ptr,
			Identity: entry.Identity,
			Active:   entry.Active,
		})
		ptr = entry.Next
	}
	return operators, nil
}

// First returns the address of the first registered operator.
func (a *Authority) First() (*stakepool.Address, error) {
	return a.getAddressPtr(headKey)
}

// Next returns the operator registered after the given one.
func (a *Authority) Next(operator stakepool.Address) (*stakepool.Address, error) {
	entry, err := a.getEntry(operator)
	if err != nil {
		return nil, err
	}
	return entry.Next, nil
}
