// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package authority

import (
	"github.com/vechain/stakepool/stakepool"
)

// entry contains all data of an operator registration.
type entry struct {
	Identity stakepool.Bytes32
	Active   bool
	Prev     *stakepool.Address `rlp:"nil"`
	Next     *stakepool.Address `rlp:"nil"`
}

// IsEmpty returns whether the entry can be treated as empty.
func (e *entry) IsEmpty() bool {
	return e.Identity.IsZero() &&
		!e.Active &&
		e.Prev == nil &&
		e.Next == nil
}

// IsLinked returns whether the entry is linked to others in the registry.
func (e *entry) IsLinked() bool {
	return e.Prev != nil || e.Next != nil
}

// Operator is one registered operator.
type Operator struct {
	Address  stakepool.Address
	Identity stakepool.Bytes32
	Active   bool
}
