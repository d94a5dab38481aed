// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/stakepool/co"
)

func TestSignalBroadcastAfterWait(t *testing.T) {
	var sig co.Signal

	var ws []co.Waiter
	for range 10 {
		ws = append(ws, sig.NewWaiter())
	}

	sig.Broadcast()

	for _, w := range ws {
		<-w.C()
	}
}

func TestSignalBroadcastBeforeWait(t *testing.T) {
	var sig co.Signal
	sig.Broadcast()

	// a broadcast before the waiter existed wakes nobody
	var blocked int
	for range 10 {
		select {
		case <-sig.NewWaiter().C():
		default:
			blocked++
		}
	}
	assert.Equal(t, 10, blocked)
}

func TestSignalWaiterCatchesMissedBroadcast(t *testing.T) {
	var sig co.Signal
	w := sig.NewWaiter()

	sig.Broadcast()
	<-w.C()

	// the channel renews after each broadcast
	sig.Broadcast()
	<-w.C()

	select {
	case <-w.C():
		t.Fatal("waiter woke without a broadcast")
	default:
	}
}
