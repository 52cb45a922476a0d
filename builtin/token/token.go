// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token is a plain ERC20-like ledger kept in contract storage.
// It backs both the staked LP token and the DAPP reward token.
package token

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/builtin/gascharger"
	"github.com/vechain/tokenfarm/builtin/reverts"
	"github.com/vechain/tokenfarm/builtin/solidity"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/log"
	"github.com/vechain/tokenfarm/state"
)

var (
	slotBalances    = farm.Slot("balances")
	slotAllowances  = farm.Slot("allowances")
	slotTotalSupply = farm.Slot("total-supply")
	slotMinter      = farm.Slot("minter")

	logger = log.WithContext("pkg", "token")
)

var (
	ErrNotMinter     = reverts.New("token: caller is not the minter")
	ErrInvalidAmount = reverts.New("token: invalid amount")
)

// Token is the ledger of one token contract.
type Token struct {
	addr        farm.Address
	balances    *solidity.Mapping[farm.Address, *big.Int]
	allowances  *solidity.Mapping[farm.Bytes32, *big.Int]
	totalSupply *solidity.Uint256
	minter      *solidity.Address
}

// New creates a token bound to the given contract address and state.
// The charger may be nil.
func New(addr farm.Address, state *state.State, charger *gascharger.Charger) *Token {
	sctx := solidity.NewContext(addr, state, charger)
	return &Token{
		addr:        addr,
		balances:    solidity.NewMapping[farm.Address, *big.Int](sctx, slotBalances),
		allowances:  solidity.NewMapping[farm.Bytes32, *big.Int](sctx, slotAllowances),
		totalSupply: solidity.NewUint256(sctx, slotTotalSupply),
		minter:      solidity.NewAddress(sctx, slotMinter),
	}
}

// Address returns the contract address of the token.
func (t *Token) Address() farm.Address {
	return t.addr
}

func allowanceKey(owner, spender farm.Address) farm.Bytes32 {
	return farm.Blake2b(owner.Bytes(), spender.Bytes())
}

// Initialize sets the account allowed to mint.
func (t *Token) Initialize(minter farm.Address) {
	t.minter.Set(minter)
}

func (t *Token) Minter() (farm.Address, error) {
	return t.minter.Get()
}

func (t *Token) TotalSupply() (*big.Int, error) {
	return t.totalSupply.Get()
}

func (t *Token) BalanceOf(addr farm.Address) (*big.Int, error) {
	bal, err := t.balances.Get(addr)
	if err != nil {
		return nil, err
	}
	if bal == nil {
		return new(big.Int), nil
	}
	return bal, nil
}

func (t *Token) Allowance(owner, spender farm.Address) (*big.Int, error) {
	allowance, err := t.allowances.Get(allowanceKey(owner, spender))
	if err != nil {
		return nil, err
	}
	return allowance, nil
}

// Approve sets the amount spender may move out of owner's balance.
func (t *Token) Approve(owner, spender farm.Address, amount *big.Int) error {
	prev, err := t.Allowance(owner, spender)
	if err != nil {
		return err
	}
	return t.allowances.Set(allowanceKey(owner, spender), amount, prev.Sign() == 0)
}

// Mint creates amount tokens for to. Only the minter may mint.
func (t *Token) Mint(caller, to farm.Address, amount *big.Int) error {
	minter, err := t.minter.Get()
	if err != nil {
		return err
	}
	if caller != minter {
		return ErrNotMinter
	}
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if err := t.addBalance(to, amount); err != nil {
		return err
	}
	if err := t.totalSupply.Add(amount); err != nil {
		return err
	}
	logger.Debug("minted", "token", t.addr, "to", to, "amount", amount)
	return nil
}

func (t *Token) addBalance(addr farm.Address, amount *big.Int) error {
	bal, err := t.BalanceOf(addr)
	if err != nil {
		return err
	}
	isNew := bal.Sign() == 0
	return t.balances.Set(addr, new(big.Int).Add(bal, amount), isNew)
}

// move returns false without touching storage if from has not enough balance.
func (t *Token) move(from, to farm.Address, amount *big.Int) (bool, error) {
	if amount.Sign() < 0 {
		return false, nil
	}
	bal, err := t.BalanceOf(from)
	if err != nil {
		return false, err
	}
	if bal.Cmp(amount) < 0 {
		return false, nil
	}
	if err := t.balances.Set(from, new(big.Int).Sub(bal, amount), false); err != nil {
		return false, err
	}
	if err := t.addBalance(to, amount); err != nil {
		return false, err
	}
	return true, nil
}

// Transfer moves amount from the caller to to.
func (t *Token) Transfer(caller, to farm.Address, amount *big.Int) (bool, error) {
	return t.move(caller, to, amount)
}

// TransferFrom moves amount from from to to, spending the allowance given to caller.
func (t *Token) TransferFrom(caller, from, to farm.Address, amount *big.Int) (bool, error) {
	allowance, err := t.Allowance(from, caller)
	if err != nil {
		return false, err
	}
	if allowance.Cmp(amount) < 0 {
		return false, nil
	}
	ok, err := t.move(from, to, amount)
	if err != nil || !ok {
		return ok, err
	}
	if err := t.allowances.Set(allowanceKey(from, caller), new(big.Int).Sub(allowance, amount), false); err != nil {
		return false, errors.WithMessage(err, "spend allowance")
	}
	return true, nil
}

// As binds the token to a calling account.
func (t *Token) As(caller farm.Address) *Holder {
	return &Holder{token: t, caller: caller}
}

// Holder calls the token on behalf of a fixed account, as a contract holding the token would.
type Holder struct {
	token  *Token
	caller farm.Address
}

func (h *Holder) Transfer(to farm.Address, amount *big.Int) (bool, error) {
	return h.token.Transfer(h.caller, to, amount)
}

func (h *Holder) TransferFrom(from, to farm.Address, amount *big.Int) (bool, error) {
	return h.token.TransferFrom(h.caller, from, to, amount)
}
