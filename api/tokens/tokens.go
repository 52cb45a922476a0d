// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

import (
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/api/utils"
	"github.com/vechain/tokenfarm/builtin"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/state"
)

// Viewer gives access to the state of the block being packed.
type Viewer interface {
	View(fn func(st *state.State, blockNum uint32) error) error
}

// Token describes one of the farm tokens.
type Token struct {
	Address     farm.Address          `json:"address"`
	Name        string                `json:"name"`
	Symbol      string                `json:"symbol"`
	Decimals    uint8                 `json:"decimals"`
	TotalSupply *math.HexOrDecimal256 `json:"totalSupply"`
}

// Balance of an account, with the amount it allows the farm to pull.
type Balance struct {
	Balance       *math.HexOrDecimal256 `json:"balance"`
	FarmAllowance *math.HexOrDecimal256 `json:"farmAllowance"`
	BlockNumber   uint32                `json:"blockNumber"`
}

type Tokens struct {
	viewer Viewer
}

func New(viewer Viewer) *Tokens {
	return &Tokens{viewer}
}

func (t *Tokens) handleList(w http.ResponseWriter, _ *http.Request) error {
	var result []*Token
	err := t.viewer.View(func(st *state.State, _ uint32) error {
		for _, c := range builtin.Tokens() {
			supply, err := c.WithState(st).TotalSupply()
			if err != nil {
				return err
			}
			result = append(result, &Token{
				Address:     c.Address,
				Name:        c.TokenName,
				Symbol:      c.Symbol,
				Decimals:    builtin.TokenDecimals,
				TotalSupply: (*math.HexOrDecimal256)(supply),
			})
		}
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, result)
}

func (t *Tokens) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	symbol := strings.ToUpper(mux.Vars(req)["symbol"])
	c, ok := builtin.TokenBySymbol(symbol)
	if !ok {
		return utils.NotFound(errors.Errorf("unknown token %q", symbol))
	}
	addr, err := utils.ParseAddress("address", mux.Vars(req)["address"])
	if err != nil {
		return err
	}

	var result *Balance
	err = t.viewer.View(func(st *state.State, blockNum uint32) error {
		ledger := c.WithState(st)
		balance, err := ledger.BalanceOf(addr)
		if err != nil {
			return err
		}
		allowance, err := ledger.Allowance(addr, builtin.TokenFarm.Address)
		if err != nil {
			return err
		}
		result = &Balance{
			Balance:       (*math.HexOrDecimal256)(balance),
			FarmAllowance: (*math.HexOrDecimal256)(allowance),
			BlockNumber:   blockNum,
		}
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, result)
}

func (t *Tokens) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /tokens").
		HandlerFunc(utils.WrapHandlerFunc(t.handleList))
	sub.Path("/{symbol}/balances/{address}").
		Methods(http.MethodGet).
		Name("GET /tokens/{symbol}/balances/{address}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetBalance))
}
