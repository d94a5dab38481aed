// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakepool

import (
	"hash"
	"sync"

	"github.com/ethereum/go-ethereum/crypto/blake2b"
)

// Blake2b computes the blake2b-256 checksum of the concatenation of the
// given slices.
func Blake2b(data ...[]byte) Bytes32 {
	if len(data) == 1 {
		return blake2b.Sum256(data[0])
	}
	h := hasherPool.Get().(*pooledHasher)
	for _, b := range data {
		h.Write(b)
	}
	h.Sum(h.out[:0])
	sum := h.out
	h.Reset()
	hasherPool.Put(h)
	return sum
}

type pooledHasher struct {
	hash.Hash
	out Bytes32
}

var hasherPool = sync.Pool{
	New: func() any {
		h, _ := blake2b.New256(nil)
		return &pooledHasher{Hash: h}
	},
}
