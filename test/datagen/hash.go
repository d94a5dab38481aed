// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/vechain/stakepool/stakepool"
)

// RandomHash returns a random 32-byte identity.
func RandomHash() stakepool.Bytes32 {
	var b32 stakepool.Bytes32
	rand.Read(b32[:])
	return b32
}
