// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/stakepool/stakepool"
)

// Key constrains mapping keys to types rendering raw bytes.
type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction similar to the mapping in Solidity.
// Values are RLP encoded at positions derived from the key and the base slot.
type Mapping[K Key, V any] struct {
	context *Context
	basePos stakepool.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos stakepool.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

// Get loads the value stored under key. A key never set yields the zero
// value, nil for pointer types.
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	position := stakepool.Blake2b(key.Bytes(), m.basePos.Bytes())
	err = m.context.state.DecodeStorage(m.context.address, position, func(raw []byte) error {
		return decodeSlot(raw, &value)
	})
	return
}

// Set stores the value under key. Zero values and nil pointers clear the slot.
func (m *Mapping[K, V]) Set(key K, value V) error {
	position := stakepool.Blake2b(key.Bytes(), m.basePos.Bytes())
	return m.context.state.EncodeStorage(m.context.address, position, func() ([]byte, error) {
		return encodeSlot(value)
	})
}

// Has reports whether a non-zero value is stored under key.
func (m *Mapping[K, V]) Has(key K) (bool, error) {
	position := stakepool.Blake2b(key.Bytes(), m.basePos.Bytes())
	raw, err := m.context.state.GetRawStorage(m.context.address, position)
	if err != nil {
		return false, err
	}
	return len(raw) > 0, nil
}

func decodeSlot[V any](raw []byte, value *V) error {
	if len(raw) == 0 {
		return nil
	}
	if reflect.ValueOf(*value).Kind() == reflect.Ptr {
		*value = reflect.New(reflect.TypeOf(*value).Elem()).Interface().(V)
	}
	return rlp.DecodeBytes(raw, value)
}

func encodeSlot[V any](value V) ([]byte, error) {
	v := reflect.ValueOf(value)
	if !v.IsValid() || (v.Kind() == reflect.Ptr && v.IsNil()) || (v.Kind() != reflect.Ptr && v.IsZero()) {
		return nil, nil
	}
	return rlp.EncodeToBytes(value)
}
