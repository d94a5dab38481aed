// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"math/big"
	mathrand "math/rand/v2"
)

func RandInt() int {
	return mathrand.Int() //#nosec G404
}

func RandIntN(n int) int {
	return mathrand.N(n) //#nosec G404
}

func RandUint64() uint64 {
	return mathrand.Uint64() //#nosec G404
}

// RandAmount returns a random whole-token amount with 18 decimals,
// between 1 and max tokens inclusive.
func RandAmount(max int64) *big.Int {
	tokens := big.NewInt(1 + mathrand.N(max)) //#nosec G404
	return tokens.Mul(tokens, big.NewInt(1e18))
}
