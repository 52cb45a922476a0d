// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/vechain/tokenfarm/builtin/gascharger"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/xenv"
)

func init() {
	for _, tc := range Tokens() {
		registerNatives(tc.contract, tokenNatives(tc))
	}
}

func tokenNatives(tc *tokenContract) []nativeDefine {
	transferEvent := tc.MustEvent("Transfer")
	approvalEvent := tc.MustEvent("Approval")

	return []nativeDefine{
		{"name", func(*xenv.Environment) ([]any, error) {
			return []any{tc.TokenName}, nil
		}},
		{"symbol", func(*xenv.Environment) ([]any, error) {
			return []any{tc.Symbol}, nil
		}},
		{"decimals", func(*xenv.Environment) ([]any, error) {
			return []any{TokenDecimals}, nil
		}},
		{"totalSupply", func(env *xenv.Environment) ([]any, error) {
			charger := gascharger.New(env)

			supply, err := tc.Native(env.State(), charger).TotalSupply()
			if err != nil {
				return nil, err
			}
			return []any{supply}, nil
		}},
		{"balanceOf", func(env *xenv.Environment) ([]any, error) {
			var account common.Address
			env.ParseArgs(&account)
			charger := gascharger.New(env)

			balance, err := tc.Native(env.State(), charger).BalanceOf(farm.Address(account))
			if err != nil {
				return nil, err
			}
			return []any{balance}, nil
		}},
		{"allowance", func(env *xenv.Environment) ([]any, error) {
			var args struct {
				Owner   common.Address
				Spender common.Address
			}
			env.ParseArgs(&args)
			charger := gascharger.New(env)

			allowance, err := tc.Native(env.State(), charger).Allowance(farm.Address(args.Owner), farm.Address(args.Spender))
			if err != nil {
				return nil, err
			}
			return []any{allowance}, nil
		}},
		{"minter", func(env *xenv.Environment) ([]any, error) {
			charger := gascharger.New(env)

			minter, err := tc.Native(env.State(), charger).Minter()
			if err != nil {
				return nil, err
			}
			return []any{minter}, nil
		}},
		{"approve", func(env *xenv.Environment) ([]any, error) {
			var args struct {
				Spender common.Address
				Amount  *big.Int
			}
			env.ParseArgs(&args)
			charger := gascharger.New(env)

			spender := farm.Address(args.Spender)
			if err := tc.Native(env.State(), charger).Approve(env.Caller(), spender, args.Amount); err != nil {
				return nil, err
			}
			env.Log(approvalEvent, tc.Address, env.Caller(), spender, args.Amount)
			return []any{true}, nil
		}},
		{"transfer", func(env *xenv.Environment) ([]any, error) {
			var args struct {
				To     common.Address
				Amount *big.Int
			}
			env.ParseArgs(&args)
			charger := gascharger.New(env)

			to := farm.Address(args.To)
			ok, err := tc.Native(env.State(), charger).Transfer(env.Caller(), to, args.Amount)
			if err != nil {
				return nil, err
			}
			if ok {
				env.Log(transferEvent, tc.Address, env.Caller(), to, args.Amount)
			}
			return []any{ok}, nil
		}},
		{"transferFrom", func(env *xenv.Environment) ([]any, error) {
			var args struct {
				From   common.Address
				To     common.Address
				Amount *big.Int
			}
			env.ParseArgs(&args)
			charger := gascharger.New(env)

			from, to := farm.Address(args.From), farm.Address(args.To)
			ok, err := tc.Native(env.State(), charger).TransferFrom(env.Caller(), from, to, args.Amount)
			if err != nil {
				return nil, err
			}
			if ok {
				env.Log(transferEvent, tc.Address, from, to, args.Amount)
			}
			return []any{ok}, nil
		}},
		{"mint", func(env *xenv.Environment) ([]any, error) {
			var args struct {
				To     common.Address
				Amount *big.Int
			}
			env.ParseArgs(&args)
			charger := gascharger.New(env)

			to := farm.Address(args.To)
			if err := tc.Native(env.State(), charger).Mint(env.Caller(), to, args.Amount); err != nil {
				return nil, err
			}
			env.Log(transferEvent, tc.Address, farm.Address{}, to, args.Amount)
			return nil, nil
		}},
	}
}
