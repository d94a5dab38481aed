// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package timeline

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/lvldb"
	"github.com/vechain/stakepool/stakepool"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/storage"
)

func newTestTimeline(t *testing.T) *Timeline {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	st := state.New(db)
	ctx := storage.NewContext(stakepool.Address{0x9}, st)
	return New(ctx, stakepool.Bytes32{1}, stakepool.Bytes32{2})
}

func phases(t *testing.T, tl *Timeline) []uint32 {
	points, err := tl.Points()
	require.NoError(t, err)
	out := make([]uint32, 0, len(points))
	for _, p := range points {
		out = append(out, p.Phase)
	}
	return out
}

func amounts(t *testing.T, tl *Timeline) []int64 {
	points, err := tl.Points()
	require.NoError(t, err)
	out := make([]int64, 0, len(points))
	for _, p := range points {
		out = append(out, p.Amount.Int64())
	}
	return out
}

func TestTimelineEmpty(t *testing.T) {
	tl := newTestTimeline(t)

	n, err := tl.Len()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), n)

	first, err := tl.First()
	require.NoError(t, err)
	assert.Nil(t, first)

	tail, err := tl.Tail()
	require.NoError(t, err)
	assert.Nil(t, tail)

	amount, err := tl.TailAmount()
	require.NoError(t, err)
	assert.Zero(t, amount.Sign())

	amount, err = tl.AmountAt(7)
	require.NoError(t, err)
	assert.Zero(t, amount.Sign())

	amount, err = tl.FrontAmountAt(7)
	require.NoError(t, err)
	assert.Zero(t, amount.Sign())

	points, err := tl.Points()
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestTimelineExtendTo(t *testing.T) {
	tl := newTestTimeline(t)

	// seeding an empty timeline lands a single zero point at the target
	require.NoError(t, tl.ExtendTo(3))
	assert.Equal(t, []uint32{3}, phases(t, tl))
	assert.Equal(t, []int64{0}, amounts(t, tl))

	require.NoError(t, tl.IncreaseAt(3, big.NewInt(100)))

	// every phase up to the target materializes, carrying the tail forward
	require.NoError(t, tl.ExtendTo(6))
	assert.Equal(t, []uint32{3, 4, 5, 6}, phases(t, tl))
	assert.Equal(t, []int64{100, 100, 100, 100}, amounts(t, tl))

	// extending to a phase at or behind the tail changes nothing
	require.NoError(t, tl.ExtendTo(6))
	require.NoError(t, tl.ExtendTo(2))
	assert.Equal(t, []uint32{3, 4, 5, 6}, phases(t, tl))
}

func TestTimelineIncreaseAt(t *testing.T) {
	tl := newTestTimeline(t)

	require.NoError(t, tl.IncreaseAt(1, big.NewInt(100)))
	assert.Equal(t, []uint32{1}, phases(t, tl))
	assert.Equal(t, []int64{100}, amounts(t, tl))

	// same phase stacks on the tail
	require.NoError(t, tl.IncreaseAt(1, big.NewInt(50)))
	assert.Equal(t, []int64{150}, amounts(t, tl))

	// a later phase extends first, then adds
	require.NoError(t, tl.IncreaseAt(3, big.NewInt(10)))
	assert.Equal(t, []uint32{1, 2, 3}, phases(t, tl))
	assert.Equal(t, []int64{150, 150, 160}, amounts(t, tl))

	// an earlier phase is a programming error, not a silent adjust
	err := tl.IncreaseAt(2, big.NewInt(1))
	assert.True(t, errors.Is(err, ErrPhaseRegression))
	assert.Equal(t, []int64{150, 150, 160}, amounts(t, tl))
}

func TestTimelineDecreaseAtTail(t *testing.T) {
	tl := newTestTimeline(t)

	require.NoError(t, tl.IncreaseAt(2, big.NewInt(100)))

	// target at the tail subtracts in place
	require.NoError(t, tl.DecreaseAt(2, big.NewInt(30)))
	assert.Equal(t, []int64{70}, amounts(t, tl))

	// more than the supply is refused untouched
	err := tl.DecreaseAt(2, big.NewInt(71))
	assert.True(t, errors.Is(err, ErrAmountUnderflow))
	assert.Equal(t, []int64{70}, amounts(t, tl))
}

func TestTimelineDecreaseAtPendingSplit(t *testing.T) {
	tl := newTestTimeline(t)

	// 100 eligible at phase 2, another 60 pending from phase 3
	require.NoError(t, tl.IncreaseAt(2, big.NewInt(100)))
	require.NoError(t, tl.IncreaseAt(3, big.NewInt(60)))
	assert.Equal(t, []int64{100, 160}, amounts(t, tl))

	// a decrease within the pending increment leaves eligible supply alone
	require.NoError(t, tl.DecreaseAt(2, big.NewInt(40)))
	assert.Equal(t, []int64{100, 120}, amounts(t, tl))

	// beyond it, the remainder comes off the eligible point as well
	require.NoError(t, tl.DecreaseAt(2, big.NewInt(50)))
	assert.Equal(t, []int64{70, 70}, amounts(t, tl))
}

func TestTimelineDecreaseAtSinglePending(t *testing.T) {
	tl := newTestTimeline(t)

	// a fresh deposit pending from phase 3, nothing eligible yet
	require.NoError(t, tl.IncreaseAt(3, big.NewInt(100)))

	require.NoError(t, tl.DecreaseAt(2, big.NewInt(40)))
	assert.Equal(t, []uint32{3}, phases(t, tl))
	assert.Equal(t, []int64{60}, amounts(t, tl))
}

func TestTimelineDecreaseAtRegression(t *testing.T) {
	tl := newTestTimeline(t)

	require.NoError(t, tl.IncreaseAt(5, big.NewInt(100)))

	err := tl.DecreaseAt(2, big.NewInt(10))
	assert.True(t, errors.Is(err, ErrPhaseRegression))
}

func TestTimelineAmountAt(t *testing.T) {
	tl := newTestTimeline(t)

	require.NoError(t, tl.IncreaseAt(2, big.NewInt(100)))
	require.NoError(t, tl.IncreaseAt(4, big.NewInt(50)))

	for _, tt := range []struct {
		phase uint32
		want  int64
	}{
		{0, 0},
		{1, 0},
		{2, 100},
		{3, 100},
		{4, 150},
		{9, 150},
	} {
		amount, err := tl.AmountAt(tt.phase)
		require.NoError(t, err)
		assert.Equal(t, tt.want, amount.Int64(), "phase %d", tt.phase)
	}
}

func TestTimelineAdvanceFront(t *testing.T) {
	tl := newTestTimeline(t)

	require.NoError(t, tl.IncreaseAt(1, big.NewInt(100)))
	require.NoError(t, tl.IncreaseAt(2, big.NewInt(20)))

	// a phase the front is not due at leaves it alone
	require.NoError(t, tl.AdvanceFront(0))
	assert.Equal(t, []uint32{1, 2}, phases(t, tl))

	// due fronts pop while younger points remain
	require.NoError(t, tl.AdvanceFront(1))
	assert.Equal(t, []uint32{2}, phases(t, tl))
	assert.Equal(t, []int64{120}, amounts(t, tl))

	// the sole point rolls forward in place instead of vanishing
	require.NoError(t, tl.AdvanceFront(2))
	assert.Equal(t, []uint32{3}, phases(t, tl))
	assert.Equal(t, []int64{120}, amounts(t, tl))

	amount, err := tl.FrontAmountAt(3)
	require.NoError(t, err)
	assert.Equal(t, int64(120), amount.Int64())
}

func TestTimelineFrontAmountAt(t *testing.T) {
	tl := newTestTimeline(t)

	require.NoError(t, tl.IncreaseAt(2, big.NewInt(100)))

	// nothing eligible while the front is still pending
	amount, err := tl.FrontAmountAt(1)
	require.NoError(t, err)
	assert.Zero(t, amount.Sign())

	amount, err = tl.FrontAmountAt(2)
	require.NoError(t, err)
	assert.Equal(t, int64(100), amount.Int64())

	// a front left behind the cursor still counts
	amount, err = tl.FrontAmountAt(3)
	require.NoError(t, err)
	assert.Equal(t, int64(100), amount.Int64())
}

func TestTimelineStakeCycle(t *testing.T) {
	tl := newTestTimeline(t)

	// deposit lands one phase past the settled cursor
	require.NoError(t, tl.IncreaseAt(1, big.NewInt(100)))

	// settling phase 0 finds nothing due
	amount, err := tl.FrontAmountAt(0)
	require.NoError(t, err)
	assert.Zero(t, amount.Sign())
	require.NoError(t, tl.AdvanceFront(0))
	assert.Equal(t, []uint32{1}, phases(t, tl))

	// settling phase 1 consumes the point and rolls it forward
	amount, err = tl.FrontAmountAt(1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), amount.Int64())
	require.NoError(t, tl.AdvanceFront(1))
	assert.Equal(t, []uint32{2}, phases(t, tl))

	// a withdrawal against eligible supply takes effect immediately
	require.NoError(t, tl.DecreaseAt(2, big.NewInt(100)))
	amount, err = tl.TailAmount()
	require.NoError(t, err)
	assert.Zero(t, amount.Sign())
	assert.Equal(t, []uint32{2}, phases(t, tl))
}
