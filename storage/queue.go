// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/stakepool"
)

var (
	// ErrQueueEmpty is returned when reading from a queue with no elements.
	ErrQueueEmpty = errors.New("storage: queue empty")
	// ErrIndexOutOfRange is returned when accessing an element outside the live window.
	ErrIndexOutOfRange = errors.New("storage: queue index out of range")
)

// Queue is a deque over consecutive storage slots. Elements are addressed
// by absolute indices that grow monotonically and are never reused, so the
// live window [HeadIndex, HeadIndex+Len) only moves forward. Pushing appends
// at the back, popping releases slots at the front.
type Queue[V any] struct {
	context *Context
	basePos stakepool.Bytes32
	ctrlPos stakepool.Bytes32
}

// queueCtrl tracks the live window of a queue.
type queueCtrl struct {
	Head uint64
	Size uint64
}

func NewQueue[V any](context *Context, itemsPos, ctrlPos stakepool.Bytes32) *Queue[V] {
	return &Queue[V]{context: context, basePos: itemsPos, ctrlPos: ctrlPos}
}

// Len returns the count of live elements.
func (q *Queue[V]) Len() (uint64, error) {
	ctrl, err := q.window()
	if err != nil {
		return 0, err
	}
	return ctrl.Size, nil
}

// HeadIndex returns the absolute index of the front element.
// It is meaningful even for an empty queue, naming the index the
// next front element would take.
func (q *Queue[V]) HeadIndex() (uint64, error) {
	ctrl, err := q.window()
	if err != nil {
		return 0, err
	}
	return ctrl.Head, nil
}

// At loads the element at the given absolute index.
func (q *Queue[V]) At(index uint64) (value V, err error) {
	ctrl, err := q.window()
	if err != nil {
		return value, err
	}
	if index < ctrl.Head || index >= ctrl.Head+ctrl.Size {
		return value, errors.Wrapf(ErrIndexOutOfRange, "index %d, window [%d, %d)", index, ctrl.Head, ctrl.Head+ctrl.Size)
	}
	return q.load(index)
}

// Front loads the first live element.
func (q *Queue[V]) Front() (value V, err error) {
	ctrl, err := q.window()
	if err != nil {
		return value, err
	}
	if ctrl.Size == 0 {
		return value, ErrQueueEmpty
	}
	return q.load(ctrl.Head)
}

// Back loads the last live element.
func (q *Queue[V]) Back() (value V, err error) {
	ctrl, err := q.window()
	if err != nil {
		return value, err
	}
	if ctrl.Size == 0 {
		return value, ErrQueueEmpty
	}
	return q.load(ctrl.Head + ctrl.Size - 1)
}

// PushBack appends an element at the back of the queue.
func (q *Queue[V]) PushBack(value V) error {
	ctrl, err := q.window()
	if err != nil {
		return err
	}
	if err := q.store(ctrl.Head+ctrl.Size, value); err != nil {
		return err
	}
	ctrl.Size++
	return q.setWindow(ctrl)
}

// SetBack overwrites the last live element in place.
func (q *Queue[V]) SetBack(value V) error {
	ctrl, err := q.window()
	if err != nil {
		return err
	}
	if ctrl.Size == 0 {
		return ErrQueueEmpty
	}
	return q.store(ctrl.Head+ctrl.Size-1, value)
}

// SetAt overwrites the element at the given absolute index in place.
func (q *Queue[V]) SetAt(index uint64, value V) error {
	ctrl, err := q.window()
	if err != nil {
		return err
	}
	if index < ctrl.Head || index >= ctrl.Head+ctrl.Size {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, window [%d, %d)", index, ctrl.Head, ctrl.Head+ctrl.Size)
	}
	return q.store(index, value)
}

// PopFront removes and returns the front element, releasing its slot.
func (q *Queue[V]) PopFront() (value V, err error) {
	ctrl, err := q.window()
	if err != nil {
		return value, err
	}
	if ctrl.Size == 0 {
		return value, ErrQueueEmpty
	}
	if value, err = q.load(ctrl.Head); err != nil {
		return value, err
	}
	if err := q.clear(ctrl.Head); err != nil {
		return value, err
	}
	ctrl.Head++
	ctrl.Size--
	return value, q.setWindow(ctrl)
}

func (q *Queue[V]) window() (ctrl queueCtrl, err error) {
	err = q.context.state.DecodeStorage(q.context.address, q.ctrlPos, func(raw []byte) error {
		return decodeSlot(raw, &ctrl)
	})
	return
}

func (q *Queue[V]) setWindow(ctrl queueCtrl) error {
	return q.context.state.EncodeStorage(q.context.address, q.ctrlPos, func() ([]byte, error) {
		return encodeSlot(ctrl)
	})
}

func (q *Queue[V]) load(index uint64) (value V, err error) {
	err = q.context.state.DecodeStorage(q.context.address, q.slot(index), func(raw []byte) error {
		return decodeSlot(raw, &value)
	})
	return
}

func (q *Queue[V]) store(index uint64, value V) error {
	return q.context.state.EncodeStorage(q.context.address, q.slot(index), func() ([]byte, error) {
		return encodeSlot(value)
	})
}

func (q *Queue[V]) clear(index uint64) error {
	return q.context.state.EncodeStorage(q.context.address, q.slot(index), func() ([]byte, error) {
		return nil, nil
	})
}

func (q *Queue[V]) slot(index uint64) stakepool.Bytes32 {
	return stakepool.Blake2b(IndexKey(index).Bytes(), q.basePos.Bytes())
}
