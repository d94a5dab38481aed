// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/stakepool/kv"
)

func TestLevelDB(t *testing.T) {
	var lvldbs []*LevelDB
	var (
		key        = []byte("123")
		value      = []byte("456")
		inValidKey = []byte("abc")
	)

	lvldb, err := New(t.TempDir(), Options{16, 16})
	assert.Equal(t, err, nil)
	defer lvldb.Close()
	lvldbs = append(lvldbs, lvldb)

	memlvldb, err := NewMem()
	assert.Equal(t, err, nil)
	defer memlvldb.Close()
	lvldbs = append(lvldbs, memlvldb)

	for _, leveldb := range lvldbs {
		err = leveldb.Put(key, value)
		assert.Equal(t, err, nil)

		ret1, err := leveldb.Get(key)
		assert.Equal(t, err, nil)

		ret2, err := leveldb.Has(key)
		assert.Equal(t, err, nil)

		ret3, err := leveldb.Has(inValidKey)
		assert.Equal(t, err, nil)

		err = leveldb.Delete(key)
		assert.Equal(t, err, nil)

		_, ret4 := leveldb.Get(key)

		tests := []struct {
			ret      any
			expected any
		}{
			{ret1, value},
			{ret2, true},
			{ret3, false},
			{leveldb.IsNotFound(ret4), true},
		}

		for _, tt := range tests {
			assert.Equal(t, tt.expected, tt.ret)
		}
	}
}

func TestLevelDBBulk(t *testing.T) {
	var (
		key   = []byte("123")
		value = []byte("456")
	)
	lvldb, err := New(t.TempDir(), Options{16, 16})
	assert.Equal(t, err, nil)
	defer lvldb.Close()

	bulk := lvldb.Bulk()

	err = bulk.Put(key, value)
	assert.Equal(t, err, nil)

	ret1 := bulk.Len()
	err = bulk.Write()
	assert.Equal(t, err, nil)

	ret2, err := lvldb.Get(key)
	assert.Equal(t, err, nil)

	tests := []struct {
		ret      any
		expected any
	}{
		{ret1, 1},
		{ret2, value},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.ret)
	}
}

func TestLevelDBIterate(t *testing.T) {
	lvldb, err := NewMem()
	assert.Equal(t, err, nil)
	defer lvldb.Close()

	pairs := map[string]string{
		"a1": "v1",
		"a2": "v2",
		"b1": "v3",
	}
	for k, v := range pairs {
		assert.Nil(t, lvldb.Put([]byte(k), []byte(v)))
	}

	iter := lvldb.Iterate(kv.Range{Start: []byte("a"), Limit: []byte("b")})
	defer iter.Release()

	var keys []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	assert.Nil(t, iter.Error())
	assert.Equal(t, []string{"a1", "a2"}, keys)
}
