// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "sync"

// Waiter yields the channel to wait on. The channel is closed by the
// broadcast following its acquisition.
type Waiter interface {
	C() <-chan struct{}
}

// Signal is a broadcast point for goroutines waiting on an event.
// Unlike sync.Cond it hands out channels, so waits compose with select.
// The zero value is ready to use.
type Signal struct {
	mu sync.Mutex
	ch chan struct{}
}

func (s *Signal) init() {
	if s.ch == nil {
		s.ch = make(chan struct{})
	}
}

// Broadcast wakes every waiter acquired before this call.
func (s *Signal) Broadcast() {
	s.mu.Lock()
	s.init()
	close(s.ch)
	s.ch = make(chan struct{})
	s.mu.Unlock()
}

// NewWaiter creates a Waiter on this signal. Each C call returns the
// channel acquired by the previous one, so a broadcast firing between
// two waits is not missed.
func (s *Signal) NewWaiter() Waiter {
	s.mu.Lock()
	s.init()
	ref := s.ch
	s.mu.Unlock()

	return waiterFunc(func() (ch <-chan struct{}) {
		ch = ref
		s.mu.Lock()
		ref = s.ch
		s.mu.Unlock()
		return
	})
}

type waiterFunc func() <-chan struct{}

func (w waiterFunc) C() <-chan struct{} {
	return w()
}
