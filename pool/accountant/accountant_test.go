// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accountant

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/pool/timeline"
)

func tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

func pt(phase uint32, amount *big.Int) *timeline.SupplyPoint {
	return &timeline.SupplyPoint{Phase: phase, Amount: amount}
}

func lookupFrom(records map[uint32]*PhaseRecord) LookupFunc {
	return func(phase uint32) (*PhaseRecord, error) {
		return records[phase], nil
	}
}

func TestAccruedSoleStaker(t *testing.T) {
	points := []*timeline.SupplyPoint{pt(1, tokens(100))}
	lookup := lookupFrom(map[uint32]*PhaseRecord{
		1: {Amount: tokens(500), ValidSupply: tokens(100), Timestamp: 1700092800},
	})

	// the only eligible holder collects the distribution in full
	accrued, err := Accrued(points, lookup, 2)
	require.NoError(t, err)
	assert.Equal(t, tokens(500), accrued)
}

func TestAccruedProportional(t *testing.T) {
	points := []*timeline.SupplyPoint{pt(1, tokens(25))}
	lookup := lookupFrom(map[uint32]*PhaseRecord{
		1: {Amount: tokens(100), ValidSupply: tokens(100), Timestamp: 1700092800},
	})

	accrued, err := Accrued(points, lookup, 2)
	require.NoError(t, err)
	assert.Equal(t, tokens(25), accrued)
}

func TestAccruedTailForwardFill(t *testing.T) {
	points := []*timeline.SupplyPoint{pt(1, tokens(100))}
	records := make(map[uint32]*PhaseRecord)
	for phase := uint32(1); phase <= 3; phase++ {
		records[phase] = &PhaseRecord{
			Amount:      tokens(50),
			ValidSupply: tokens(100),
			Timestamp:   1700006400 + uint64(phase)*86400,
		}
	}

	// one explicit phase plus two carried forward by the tail
	accrued, err := Accrued(points, lookupFrom(records), 4)
	require.NoError(t, err)
	assert.Equal(t, tokens(150), accrued)
}

func TestAccruedSkipsPendingPhases(t *testing.T) {
	points := []*timeline.SupplyPoint{pt(1, tokens(100)), pt(2, tokens(100))}
	lookup := lookupFrom(map[uint32]*PhaseRecord{
		1: {Amount: tokens(10), ValidSupply: tokens(100), Timestamp: 1700092800},
	})

	// phase 2 has not settled, so only phase 1 counts
	accrued, err := Accrued(points, lookup, 2)
	require.NoError(t, err)
	assert.Equal(t, tokens(10), accrued)
}

func TestAccruedZeroStakePhase(t *testing.T) {
	points := []*timeline.SupplyPoint{pt(1, tokens(100)), pt(2, new(big.Int)), pt(3, tokens(100))}
	records := map[uint32]*PhaseRecord{
		1: {Amount: tokens(10), ValidSupply: tokens(100), Timestamp: 1700092800},
		2: {Amount: tokens(10), ValidSupply: tokens(40), Timestamp: 1700179200},
		3: {Amount: tokens(10), ValidSupply: tokens(100), Timestamp: 1700265600},
	}

	// holding nothing through phase 2 earns nothing for it
	accrued, err := Accrued(points, lookupFrom(records), 4)
	require.NoError(t, err)
	assert.Equal(t, tokens(20), accrued)
}

func TestAccruedZeroSupplyPhase(t *testing.T) {
	points := []*timeline.SupplyPoint{pt(0, tokens(100))}
	lookup := lookupFrom(map[uint32]*PhaseRecord{
		0: {Amount: tokens(500), ValidSupply: new(big.Int), Timestamp: 1700006400},
	})

	// a distribution recorded against empty supply pays out to nobody
	accrued, err := Accrued(points, lookup, 1)
	require.NoError(t, err)
	assert.Zero(t, accrued.Sign())
}

func TestAccruedFloorsDust(t *testing.T) {
	lookup := lookupFrom(map[uint32]*PhaseRecord{
		1: {Amount: big.NewInt(100), ValidSupply: big.NewInt(3), Timestamp: 1700092800},
	})

	// three holders of one unit each share 100, 33 apiece with 1 retained
	for range 3 {
		accrued, err := Accrued([]*timeline.SupplyPoint{pt(1, big.NewInt(1))}, lookup, 2)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(33), accrued)
	}
}

func TestAccruedOverflow(t *testing.T) {
	maxWord := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	// a stake wider than a word is refused outright
	_, err := Accrued(
		[]*timeline.SupplyPoint{pt(1, new(big.Int).Lsh(big.NewInt(1), 256))},
		lookupFrom(map[uint32]*PhaseRecord{
			1: {Amount: big.NewInt(1), ValidSupply: big.NewInt(1), Timestamp: 1700092800},
		}),
		2,
	)
	assert.True(t, errors.Is(err, ErrOverflow))

	// so is an accrual product that leaves 256 bits
	_, err = Accrued(
		[]*timeline.SupplyPoint{pt(1, maxWord)},
		lookupFrom(map[uint32]*PhaseRecord{
			1: {Amount: big.NewInt(2), ValidSupply: big.NewInt(1), Timestamp: 1700092800},
		}),
		2,
	)
	assert.True(t, errors.Is(err, ErrOverflow))
}

func TestAccruedLookupError(t *testing.T) {
	fault := errors.New("ledger fault")
	lookup := func(_ uint32) (*PhaseRecord, error) { return nil, fault }

	_, err := Accrued([]*timeline.SupplyPoint{pt(1, tokens(1))}, lookup, 2)
	assert.True(t, errors.Is(err, fault))
}

func TestUnpaid(t *testing.T) {
	assert.Equal(t, big.NewInt(60), Unpaid(big.NewInt(100), big.NewInt(40)))
	assert.Zero(t, Unpaid(big.NewInt(100), big.NewInt(100)).Sign())
	assert.Zero(t, Unpaid(big.NewInt(100), big.NewInt(120)).Sign())
}

func TestHistorySlice(t *testing.T) {
	points := []*timeline.SupplyPoint{pt(1, tokens(100)), pt(2, tokens(150))}
	records := map[uint32]*PhaseRecord{
		0: {Amount: tokens(10), ValidSupply: new(big.Int), Timestamp: 1700006400},
		1: {Amount: tokens(10), ValidSupply: tokens(100), Timestamp: 1700092800},
		2: {Amount: tokens(30), ValidSupply: tokens(300), Timestamp: 1700179200},
		3: {Amount: tokens(40), ValidSupply: tokens(300), Timestamp: 1700265600},
	}

	entries, err := HistorySlice(points, lookupFrom(records), 0, 4)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	// nothing staked yet at phase 0
	assert.Equal(t, uint32(0), entries[0].Phase)
	assert.Equal(t, uint64(1700006400), entries[0].Timestamp)
	assert.Zero(t, entries[0].UserReward.Sign())

	// sole holder of phase 1
	assert.Equal(t, tokens(10), entries[1].UserReward)
	assert.Equal(t, tokens(100), entries[1].ValidSupply)

	// half the supply of phases 2 and 3, the tail carrying into 3
	assert.Equal(t, tokens(15), entries[2].UserReward)
	assert.Equal(t, tokens(20), entries[3].UserReward)
	assert.Equal(t, tokens(300), entries[3].ValidSupply)
}

func TestHistorySliceSubrange(t *testing.T) {
	points := []*timeline.SupplyPoint{pt(1, tokens(100))}
	records := map[uint32]*PhaseRecord{
		2: {Amount: tokens(10), ValidSupply: tokens(100), Timestamp: 1700179200},
	}

	entries, err := HistorySlice(points, lookupFrom(records), 2, 3)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, uint32(2), entries[0].Phase)
	assert.Equal(t, tokens(10), entries[0].UserReward)
}

func TestHistorySliceMissingRecord(t *testing.T) {
	points := []*timeline.SupplyPoint{pt(0, tokens(100))}

	entries, err := HistorySlice(points, lookupFrom(nil), 0, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Zero(t, entries[0].UserReward.Sign())
	assert.Zero(t, entries[0].ValidSupply.Sign())
	assert.Equal(t, uint64(0), entries[0].Timestamp)
}

func TestHistorySliceInvalidRange(t *testing.T) {
	points := []*timeline.SupplyPoint{pt(0, tokens(100))}

	_, err := HistorySlice(points, lookupFrom(nil), 3, 3)
	assert.True(t, errors.Is(err, ErrInvalidRange))

	_, err = HistorySlice(points, lookupFrom(nil), 5, 3)
	assert.True(t, errors.Is(err, ErrInvalidRange))

	_, err = HistorySlice(nil, lookupFrom(nil), 0, 3)
	assert.True(t, errors.Is(err, ErrInvalidRange))
}
