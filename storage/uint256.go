// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/stakepool/stakepool"
)

// ErrValueOutOfRange is returned when a value does not fit the 256-bit slot,
// either by exceeding its capacity or by going negative.
var ErrValueOutOfRange = errors.New("storage: value out of uint256 range")

// Uint256 is a wrapper for storage and retrieval of an uint256,
// similar to storing an uint256 in a smart contract.
// Unlike the EVM, writes that do not fit the slot fail loudly
// instead of truncating.
type Uint256 struct {
	context *Context
	pos     stakepool.Bytes32
}

func NewUint256(context *Context, pos stakepool.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

func (u *Uint256) Get() (*big.Int, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(storage.Bytes()), nil
}

func (u *Uint256) Set(value *big.Int) error {
	if value.Sign() < 0 || value.Cmp(stakepool.MaxStorageAmount) > 0 {
		return errors.Wrapf(ErrValueOutOfRange, "set %v", value)
	}
	u.context.state.SetStorage(u.context.address, u.pos, stakepool.BytesToBytes32(value.Bytes()))
	return nil
}

// Add increases the stored value by the given amount.
// It fails when the sum exceeds 256 bits, leaving the slot untouched.
func (u *Uint256) Add(value *big.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	return u.Set(storage.Add(storage, value))
}

// Sub decreases the stored value by the given amount.
// It fails when the result goes negative, leaving the slot untouched.
func (u *Uint256) Sub(value *big.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	return u.Set(storage.Sub(storage, value))
}
