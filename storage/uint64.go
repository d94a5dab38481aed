// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"github.com/vechain/stakepool/stakepool"
)

// Uint64 is a wrapper for storage and retrieval of an uint64 counter.
// A slot never written reads as zero, and writing zero releases the slot.
type Uint64 struct {
	context *Context
	pos     stakepool.Bytes32
}

func NewUint64(context *Context, pos stakepool.Bytes32) *Uint64 {
	return &Uint64{context: context, pos: pos}
}

func (u *Uint64) Get() (value uint64, err error) {
	err = u.context.state.DecodeStorage(u.context.address, u.pos, func(raw []byte) error {
		return decodeSlot(raw, &value)
	})
	return
}

func (u *Uint64) Set(value uint64) error {
	return u.context.state.EncodeStorage(u.context.address, u.pos, func() ([]byte, error) {
		return encodeSlot(value)
	})
}
