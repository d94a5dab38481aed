// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/stakepool/eventdb"
	"github.com/vechain/stakepool/stakepool"
)

const (
	day = uint64(86400)
	t0  = uint64(1700006400)
)

var (
	alice    = stakepool.BytesToAddress([]byte("alice"))
	bob      = stakepool.BytesToAddress([]byte("bob"))
	operator = stakepool.BytesToAddress([]byte("operator"))
)

// seedHistory appends a small mixed history and returns it, seq assigned.
func seedHistory(t *testing.T, db *eventdb.EventDB) []*eventdb.Event {
	events := []*eventdb.Event{
		{Timestamp: t0 + 10, Kind: eventdb.KindDeposit, Account: alice, Amount: big.NewInt(100), Phase: 0},
		{Timestamp: t0 + 20, Kind: eventdb.KindDeposit, Account: bob, Amount: big.NewInt(50), Phase: 0},
		{Timestamp: t0 + day, Kind: eventdb.KindDistribution, Account: operator, Amount: big.NewInt(400), Phase: 0},
		{Timestamp: t0 + day + 5, Kind: eventdb.KindWithdrawal, Account: bob, Amount: big.NewInt(20), Phase: 1},
		{Timestamp: t0 + day + 60, Kind: eventdb.KindClaim, Account: alice, Amount: big.NewInt(300), Phase: 1},
		{Timestamp: t0 + 2*day, Kind: eventdb.KindDistribution, Account: operator, Amount: big.NewInt(200), Phase: 1},
	}
	require.NoError(t, db.Append(events))
	return events
}

func TestEventDBAppend(t *testing.T) {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	events := seedHistory(t, db)
	for i, event := range events {
		assert.Equal(t, uint64(i+1), event.Seq)
	}
	assert.NoError(t, db.Append(nil))

	all, err := db.Filter(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, len(events))
	for i, got := range all {
		assert.Equal(t, events[i].Seq, got.Seq)
		assert.Equal(t, events[i].Timestamp, got.Timestamp)
		assert.Equal(t, events[i].Kind, got.Kind)
		assert.Equal(t, events[i].Account, got.Account)
		assert.Equal(t, events[i].Amount, got.Amount)
		assert.Equal(t, events[i].Phase, got.Phase)
	}
}

func TestEventDBNewestSeq(t *testing.T) {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	newest, err := db.NewestSeq()
	require.NoError(t, err)
	assert.Zero(t, newest)

	events := seedHistory(t, db)
	newest, err = db.NewestSeq()
	require.NoError(t, err)
	assert.Equal(t, events[len(events)-1].Seq, newest)
}

func TestEventDBFilterByKind(t *testing.T) {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	seedHistory(t, db)

	deposits, err := db.Filter(context.Background(), &eventdb.Filter{
		Kinds: []eventdb.Kind{eventdb.KindDeposit},
	})
	require.NoError(t, err)
	assert.Len(t, deposits, 2)

	mixed, err := db.Filter(context.Background(), &eventdb.Filter{
		Kinds: []eventdb.Kind{eventdb.KindDeposit, eventdb.KindClaim},
	})
	require.NoError(t, err)
	assert.Len(t, mixed, 3)
}

func TestEventDBFilterByAccount(t *testing.T) {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	seedHistory(t, db)

	got, err := db.Filter(context.Background(), &eventdb.Filter{Account: &alice})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, eventdb.KindDeposit, got[0].Kind)
	assert.Equal(t, eventdb.KindClaim, got[1].Kind)

	unknown := stakepool.BytesToAddress([]byte("nobody"))
	got, err = db.Filter(context.Background(), &eventdb.Filter{Account: &unknown})
	require.NoError(t, err)
	assert.Len(t, got, 0)
}

func TestEventDBFilterByRange(t *testing.T) {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	seedHistory(t, db)

	got, err := db.Filter(context.Background(), &eventdb.Filter{
		Range: &eventdb.Range{From: t0, To: t0 + day},
	})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	// To below From leaves the range open ended.
	got, err = db.Filter(context.Background(), &eventdb.Filter{
		Range: &eventdb.Range{From: t0 + day},
	})
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestEventDBFilterOrderAndPaging(t *testing.T) {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	seedHistory(t, db)

	got, err := db.Filter(context.Background(), &eventdb.Filter{
		Order:   eventdb.DESC,
		Options: &eventdb.Options{Offset: 0, Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(6), got[0].Seq)
	assert.Equal(t, uint64(5), got[1].Seq)

	got, err = db.Filter(context.Background(), &eventdb.Filter{
		Order:   eventdb.DESC,
		Options: &eventdb.Options{Offset: 2, Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(4), got[0].Seq)
	assert.Equal(t, uint64(3), got[1].Seq)
}

func TestEventDBFilterCombined(t *testing.T) {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	seedHistory(t, db)

	got, err := db.Filter(context.Background(), &eventdb.Filter{
		Account: &alice,
		Kinds:   []eventdb.Kind{eventdb.KindClaim},
		Range:   &eventdb.Range{From: t0, To: t0 + 3*day},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(5), got[0].Seq)
	assert.Equal(t, big.NewInt(300), got[0].Amount)
}

func TestEventDBFilterCancelledContext(t *testing.T) {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	seedHistory(t, db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = db.Filter(ctx, nil)
	assert.Error(t, err)
}

func BenchmarkAppend(b *testing.B) {
	db, err := eventdb.NewMem()
	if err != nil {
		b.Fatal(err)
	}
	defer db.Close()

	var events []*eventdb.Event
	for i := 0; i < 100; i++ {
		events = append(events, &eventdb.Event{
			Timestamp: t0 + uint64(i),
			Kind:      eventdb.KindDeposit,
			Account:   alice,
			Amount:    big.NewInt(int64(i + 1)),
			Phase:     uint32(i / 10),
		})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := db.Append(events); err != nil {
			b.Fatal(err)
		}
	}
}
