// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package storage provides typed accessors over raw state slots,
// mirroring the storage layout conventions of Solidity contracts.
package storage

import (
	"github.com/vechain/stakepool/stakepool"
	"github.com/vechain/stakepool/state"
)

// Context binds typed storage accessors to one ledger address on a state.
type Context struct {
	address stakepool.Address
	state   *state.State
}

// NewContext creates a context for the given ledger address.
func NewContext(address stakepool.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

// State returns the backing state.
func (c *Context) State() *state.State {
	return c.state
}

// Address returns the ledger address slots are scoped to.
func (c *Context) Address() stakepool.Address {
	return c.address
}

// NameToSlot derives a storage slot position from a variable name.
func NameToSlot(name string) stakepool.Bytes32 {
	return stakepool.BytesToBytes32([]byte(name))
}
