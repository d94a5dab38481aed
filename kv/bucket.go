// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb/util"
)

// Bucket is a key prefix carving a logical keyspace out of a store.
type Bucket string

// appendKey joins the bucket prefix with key into the pooled buffer.
// The result stays valid until the buffer returns to the pool.
func (b Bucket) appendKey(kb *keyBuf, key []byte) []byte {
	kb.b = append(append(kb.b[:0], b...), key...)
	return kb.b
}

// NewGetter wraps src so reads see only keys under the bucket.
func (b Bucket) NewGetter(src Getter) Getter {
	return &struct {
		GetFunc
		HasFunc
		IsNotFoundFunc
	}{
		func(key []byte) ([]byte, error) {
			kb := keyPool.Get().(*keyBuf)
			defer keyPool.Put(kb)
			return src.Get(b.appendKey(kb, key))
		},
		func(key []byte) (bool, error) {
			kb := keyPool.Get().(*keyBuf)
			defer keyPool.Put(kb)
			return src.Has(b.appendKey(kb, key))
		},
		src.IsNotFound,
	}
}

// NewPutter wraps src so writes land under the bucket.
func (b Bucket) NewPutter(src Putter) Putter {
	return &struct {
		PutFunc
		DeleteFunc
	}{
		func(key, val []byte) error {
			kb := keyPool.Get().(*keyBuf)
			defer keyPool.Put(kb)
			return src.Put(b.appendKey(kb, key), val)
		},
		func(key []byte) error {
			kb := keyPool.Get().(*keyBuf)
			defer keyPool.Put(kb)
			return src.Delete(b.appendKey(kb, key))
		},
	}
}

// NewStore wraps src into a store scoped to the bucket.
func (b Bucket) NewStore(src Store) Store {
	return &struct {
		Getter
		Putter
		BulkFunc
		IterateFunc
	}{
		b.NewGetter(src),
		b.NewPutter(src),
		func() Bulk {
			bulk := src.Bulk()
			return &struct {
				Putter
				LenFunc
				WriteFunc
			}{
				b.NewPutter(bulk),
				bulk.Len,
				bulk.Write,
			}
		},
		func(r Range) Iterator {
			// the iterator copies its bounds up front, pooled buffers
			// may be reused right after it is created
			start := keyPool.Get().(*keyBuf)
			defer keyPool.Put(start)
			r.Start = b.appendKey(start, r.Start)

			if len(r.Limit) == 0 {
				r.Limit = util.BytesPrefix([]byte(b)).Limit
			} else {
				limit := keyPool.Get().(*keyBuf)
				defer keyPool.Put(limit)
				r.Limit = b.appendKey(limit, r.Limit)
			}
			iter := src.Iterate(r)
			return &struct {
				FirstFunc
				LastFunc
				NextFunc
				PrevFunc
				KeyFunc
				ValueFunc
				ReleaseFunc
				ErrorFunc
			}{
				iter.First,
				iter.Last,
				iter.Next,
				iter.Prev,
				// drop the bucket prefix
				func() []byte { return iter.Key()[len(b):] },
				iter.Value,
				iter.Release,
				iter.Error,
			}
		},
	}
}

type keyBuf struct {
	b []byte
}

var keyPool = sync.Pool{
	New: func() any {
		return &keyBuf{}
	},
}
