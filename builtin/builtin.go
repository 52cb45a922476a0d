// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"

	"github.com/vechain/tokenfarm/builtin/gascharger"
	"github.com/vechain/tokenfarm/builtin/token"
	"github.com/vechain/tokenfarm/builtin/tokenfarm"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/state"
	"github.com/vechain/tokenfarm/xenv"
)

// Builtin contracts binding.
var (
	LPToken   = &tokenContract{mustLoadContract("LPToken", "Token"), "LP Token", "LP"}
	DAPPToken = &tokenContract{mustLoadContract("DAPPToken", "Token"), "DApp Token", "DAPP"}
	TokenFarm = &farmContract{mustLoadContract("TokenFarm", "TokenFarm")}
)

// TokenDecimals is the decimals of both tokens.
const TokenDecimals uint8 = 18

type (
	tokenContract struct {
		*contract
		TokenName string
		Symbol    string
	}
	farmContract struct{ *contract }
)

// Tokens returns all token contracts.
func Tokens() []*tokenContract {
	return []*tokenContract{LPToken, DAPPToken}
}

// TokenBySymbol finds a token by its case sensitive symbol.
func TokenBySymbol(symbol string) (*tokenContract, bool) {
	for _, t := range Tokens() {
		if t.Symbol == symbol {
			return t, true
		}
	}
	return nil, false
}

func tokenByAddress(addr farm.Address) (*tokenContract, bool) {
	for _, t := range Tokens() {
		if t.Address == addr {
			return t, true
		}
	}
	return nil, false
}

func (t *tokenContract) Native(state *state.State, charger *gascharger.Charger) *token.Token {
	return token.New(t.Address, state, charger)
}

// WithState returns the token ledger for read access, no gas is charged.
func (t *tokenContract) WithState(state *state.State) *token.Token {
	return t.Native(state, nil)
}

// Native returns the farm bound to env: token calls emit their events into env.
func (f *farmContract) Native(env *xenv.Environment, charger *gascharger.Charger) *tokenfarm.TokenFarm {
	return tokenfarm.New(f.Address, env.State(), charger, func(addr farm.Address) tokenfarm.Token {
		tc, ok := tokenByAddress(addr)
		if !ok {
			return missingToken{}
		}
		return &tokenCall{
			env:    env,
			event:  tc.MustEvent("Transfer"),
			ledger: tc.Native(env.State(), charger),
			sender: f.Address,
		}
	})
}

// WithState returns the farm for read access and setup code, no gas is charged and no event is emitted.
func (f *farmContract) WithState(state *state.State) *tokenfarm.TokenFarm {
	return tokenfarm.New(f.Address, state, nil, func(addr farm.Address) tokenfarm.Token {
		tc, ok := tokenByAddress(addr)
		if !ok {
			return missingToken{}
		}
		return tc.WithState(state).As(f.Address)
	})
}

// missingToken stands for an address with no token deployed: every transfer fails.
type missingToken struct{}

func (missingToken) TransferFrom(farm.Address, farm.Address, *big.Int) (bool, error) { return false, nil }
func (missingToken) Transfer(farm.Address, *big.Int) (bool, error)                   { return false, nil }
