// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package timeline tracks reward-eligible supply per phase as an ordered
// run of points in storage. Phases between points carry the last amount
// forward; phases before the first point hold nothing.
package timeline

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/stakepool/stakepool"
	"github.com/vechain/stakepool/storage"
)

var (
	// ErrPhaseRegression is returned when a mutation targets a phase the
	// timeline has already moved past.
	ErrPhaseRegression = errors.New("timeline: target phase behind tail")
	// ErrAmountUnderflow is returned when a decrease exceeds the tracked supply.
	ErrAmountUnderflow = errors.New("timeline: decrease exceeds supply")
)

// SupplyPoint marks the eligible supply from a phase on.
type SupplyPoint struct {
	Phase  uint32
	Amount *big.Int
}

// Timeline is a phase-ordered run of supply points over a storage queue.
// Points join at the tail and leave at the head; phases strictly increase.
type Timeline struct {
	points *storage.Queue[*SupplyPoint]
}

// New creates a timeline over the queue rooted at the given slots.
func New(context *storage.Context, itemsPos, ctrlPos stakepool.Bytes32) *Timeline {
	return &Timeline{
		points: storage.NewQueue[*SupplyPoint](context, itemsPos, ctrlPos),
	}
}

// Len returns the count of live points.
func (t *Timeline) Len() (uint64, error) {
	return t.points.Len()
}

// First returns the front point, nil when the timeline is empty.
func (t *Timeline) First() (*SupplyPoint, error) {
	point, err := t.points.Front()
	if err != nil {
		if errors.Is(err, storage.ErrQueueEmpty) {
			return nil, nil
		}
		return nil, err
	}
	return point, nil
}

// Tail returns the last point, nil when the timeline is empty.
func (t *Timeline) Tail() (*SupplyPoint, error) {
	point, err := t.points.Back()
	if err != nil {
		if errors.Is(err, storage.ErrQueueEmpty) {
			return nil, nil
		}
		return nil, err
	}
	return point, nil
}

// TailAmount returns the amount carried by the tail, zero when empty.
func (t *Timeline) TailAmount() (*big.Int, error) {
	tail, err := t.Tail()
	if err != nil {
		return nil, err
	}
	if tail == nil {
		return new(big.Int), nil
	}
	return tail.Amount, nil
}

// Points returns all live points in phase order.
func (t *Timeline) Points() ([]*SupplyPoint, error) {
	head, err := t.points.HeadIndex()
	if err != nil {
		return nil, err
	}
	size, err := t.points.Len()
	if err != nil {
		return nil, err
	}
	points := make([]*SupplyPoint, 0, size)
	for i := uint64(0); i < size; i++ {
		point, err := t.points.At(head + i)
		if err != nil {
			return nil, err
		}
		points = append(points, point)
	}
	return points, nil
}

// AmountAt returns the supply eligible at the given phase, carrying the
// nearest preceding point forward. Phases before the first point hold zero.
func (t *Timeline) AmountAt(phase uint32) (*big.Int, error) {
	head, err := t.points.HeadIndex()
	if err != nil {
		return nil, err
	}
	size, err := t.points.Len()
	if err != nil {
		return nil, err
	}

	// binary search the first point past the phase
	lo, hi := uint64(0), size
	for lo < hi {
		mid := (lo + hi) / 2
		point, err := t.points.At(head + mid)
		if err != nil {
			return nil, err
		}
		if point.Phase <= phase {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return new(big.Int), nil
	}
	point, err := t.points.At(head + lo - 1)
	if err != nil {
		return nil, err
	}
	return point.Amount, nil
}

// FrontAmountAt returns the front amount when the front point is due at
// the given phase, zero otherwise. The head trim keeps the front at or
// ahead of the distribution cursor, so this is the eligible supply read
// used when recording a distribution.
func (t *Timeline) FrontAmountAt(phase uint32) (*big.Int, error) {
	front, err := t.First()
	if err != nil {
		return nil, err
	}
	if front == nil || front.Phase > phase {
		return new(big.Int), nil
	}
	return front.Amount, nil
}

// ExtendTo materializes points up to the target phase, carrying the tail
// amount forward. An empty timeline seeds a zero point at the target.
// Extending never shrinks nor rewrites existing points.
func (t *Timeline) ExtendTo(target uint32) error {
	tail, err := t.Tail()
	if err != nil {
		return err
	}
	if tail == nil {
		return t.points.PushBack(&SupplyPoint{Phase: target, Amount: new(big.Int)})
	}
	for p := tail.Phase; p < target; p++ {
		point := &SupplyPoint{Phase: p + 1, Amount: new(big.Int).Set(tail.Amount)}
		if err := t.points.PushBack(point); err != nil {
			return err
		}
	}
	return nil
}

// IncreaseAt raises the supply by delta from the target phase on.
func (t *Timeline) IncreaseAt(target uint32, delta *big.Int) error {
	if err := t.ExtendTo(target); err != nil {
		return err
	}
	tail, err := t.Tail()
	if err != nil {
		return err
	}
	if tail.Phase != target {
		return errors.Wrapf(ErrPhaseRegression, "increase at %d, tail at %d", target, tail.Phase)
	}
	tail.Amount.Add(tail.Amount, delta)
	return t.points.SetBack(tail)
}

// DecreaseAt lowers the supply by delta from the target phase on. When a
// pending point sits one phase past the target, the part of delta beyond
// that pending increment also comes off the preceding point, clamped at
// zero, so already eligible supply shrinks by no more than it must.
func (t *Timeline) DecreaseAt(target uint32, delta *big.Int) error {
	if err := t.ExtendTo(target); err != nil {
		return err
	}
	tail, err := t.Tail()
	if err != nil {
		return err
	}

	switch {
	case tail.Phase == target:
		if tail.Amount.Cmp(delta) < 0 {
			return errors.Wrapf(ErrAmountUnderflow, "decrease %v at %d, supply %v", delta, target, tail.Amount)
		}
		tail.Amount.Sub(tail.Amount, delta)
		return t.points.SetBack(tail)

	case tail.Phase == target+1:
		if tail.Amount.Cmp(delta) < 0 {
			return errors.Wrapf(ErrAmountUnderflow, "decrease %v at %d, supply %v", delta, target, tail.Amount)
		}
		head, err := t.points.HeadIndex()
		if err != nil {
			return err
		}
		size, err := t.points.Len()
		if err != nil {
			return err
		}
		// the tail increment not yet eligible at the target phase
		nextOnly := new(big.Int).Set(tail.Amount)
		var prev *SupplyPoint
		if size >= 2 {
			if prev, err = t.points.At(head + size - 2); err != nil {
				return err
			}
			nextOnly.Sub(nextOnly, prev.Amount)
		}
		tail.Amount.Sub(tail.Amount, delta)
		if err := t.points.SetBack(tail); err != nil {
			return err
		}
		if prev != nil && delta.Cmp(nextOnly) > 0 {
			remainder := new(big.Int).Sub(delta, nextOnly)
			if prev.Amount.Cmp(remainder) <= 0 {
				prev.Amount.SetUint64(0)
			} else {
				prev.Amount.Sub(prev.Amount, remainder)
			}
			return t.points.SetAt(head+size-2, prev)
		}
		return nil

	default:
		return errors.Wrapf(ErrPhaseRegression, "decrease at %d, tail at %d", target, tail.Phase)
	}
}

// AdvanceFront trims the point due at the given phase once it is spent.
// The sole remaining point rolls forward in place instead, keeping the
// carried amount alive for the following phase.
func (t *Timeline) AdvanceFront(phase uint32) error {
	front, err := t.First()
	if err != nil {
		return err
	}
	if front == nil || front.Phase != phase {
		return nil
	}
	size, err := t.points.Len()
	if err != nil {
		return err
	}
	if size == 1 {
		front.Phase++
		return t.points.SetBack(front)
	}
	_, err = t.points.PopFront()
	return err
}
