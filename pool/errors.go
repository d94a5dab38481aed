// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/pool/accountant"
)

// Sentinel errors of the pool ledger. Operations wrap them with context,
// callers match with errors.Is. Any failure aborts the whole operation
// with no partial state change.
var (
	// ErrInvalidAmount rejects zero or negative amounts.
	ErrInvalidAmount = errors.New("pool: invalid amount")
	// ErrInsufficientBalance rejects spending more than is held or claimable.
	ErrInsufficientBalance = errors.New("pool: insufficient balance")
	// ErrUnauthorized rejects callers lacking the required role.
	ErrUnauthorized = errors.New("pool: unauthorized")
	// ErrNotReady rejects distributions while the current phase is still open.
	ErrNotReady = errors.New("pool: not ready")
	// ErrReentrantCall rejects a withdrawal nested inside another.
	ErrReentrantCall = errors.New("pool: reentrant call")
	// ErrTransferFailed reports a collaborator token ledger refusing a move.
	ErrTransferFailed = errors.New("pool: transfer failed")

	// ErrInvalidRange rejects empty history ranges, see accountant.
	ErrInvalidRange = accountant.ErrInvalidRange
	// ErrOverflow reports accrual arithmetic leaving 256 bits, see accountant.
	ErrOverflow = accountant.ErrOverflow
)
