// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import "encoding/binary"

// IndexKey renders an ordinal mapping key, for mappings keyed by
// sequence numbers such as phase indices.
type IndexKey uint64

// Bytes returns the big endian rendering of the key.
func (k IndexKey) Bytes() []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(k))
	return b[:]
}
