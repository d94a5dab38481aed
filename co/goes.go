// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package co provides the concurrency helpers shared by the servers and
// the activity feed.
package co

import "sync"

// Goes tracks goroutines so shutdown can wait for them to finish.
// The zero value is ready to use.
type Goes struct {
	wg sync.WaitGroup
}

// Go starts f on a new goroutine.
func (g *Goes) Go(f func()) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		f()
	}()
}

// Wait blocks until every goroutine started by Go has returned.
func (g *Goes) Wait() {
	g.wg.Wait()
}
