// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the fungible token ledger the pool stakes
// and pays rewards in.
package token

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/stakepool/stakepool"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/storage"
)

var (
	// ErrInvalidAmount is returned for negative amounts.
	ErrInvalidAmount = errors.New("token: invalid amount")
	// ErrInsufficientBalance is returned when a holder cannot cover a transfer.
	ErrInsufficientBalance = errors.New("token: insufficient balance")
)

var (
	slotBalances = storage.NameToSlot("token-balances")
	slotSupply   = storage.NameToSlot("token-supply")
)

// Token is the ledger of one fungible token, bound to a ledger address.
type Token struct {
	addr     stakepool.Address
	balances *storage.Mapping[stakepool.Address, *big.Int]
	supply   *storage.Uint256
}

// New creates a token ledger bound to the given address on the state.
func New(addr stakepool.Address, state *state.State) *Token {
	context := storage.NewContext(addr, state)
	return &Token{
		addr:     addr,
		balances: storage.NewMapping[stakepool.Address, *big.Int](context, slotBalances),
		supply:   storage.NewUint256(context, slotSupply),
	}
}

// Address identifies the token ledger.
func (t *Token) Address() stakepool.Address {
	return t.addr
}

// BalanceOf returns the balance of the given holder.
func (t *Token) BalanceOf(holder stakepool.Address) (*big.Int, error) {
	balance, err := t.balances.Get(holder)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}
	if balance == nil {
		return new(big.Int), nil
	}
	return balance, nil
}

// TotalSupply returns the total minted amount.
func (t *Token) TotalSupply() (*big.Int, error) {
	return t.supply.Get()
}

// Mint credits amount to the holder, growing the total supply.
func (t *Token) Mint(holder stakepool.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	if err := t.credit(holder, amount); err != nil {
		return err
	}
	return t.supply.Add(amount)
}

// Burn debits amount from the holder, shrinking the total supply.
func (t *Token) Burn(holder stakepool.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	if err := t.debit(holder, amount); err != nil {
		return err
	}
	return t.supply.Sub(amount)
}

// Transfer moves amount from one holder to another.
func (t *Token) Transfer(from, to stakepool.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	if err := t.debit(from, amount); err != nil {
		return err
	}
	return t.credit(to, amount)
}

func (t *Token) credit(holder stakepool.Address, amount *big.Int) error {
	balance, err := t.BalanceOf(holder)
	if err != nil {
		return err
	}
	return t.setBalance(holder, balance.Add(balance, amount))
}

func (t *Token) debit(holder stakepool.Address, amount *big.Int) error {
	balance, err := t.BalanceOf(holder)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return errors.Wrapf(ErrInsufficientBalance, "holder %v", holder)
	}
	return t.setBalance(holder, balance.Sub(balance, amount))
}

func (t *Token) setBalance(holder stakepool.Address, balance *big.Int) error {
	// zero balances release their slots
	if balance.Sign() == 0 {
		return t.balances.Set(holder, nil)
	}
	return t.balances.Set(holder, balance)
}
