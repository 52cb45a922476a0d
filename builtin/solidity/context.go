// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/vechain/tokenfarm/builtin/gascharger"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/state"
)

// Context binds storage helpers to a contract address, a state and an optional gas charger.
type Context struct {
	address farm.Address
	state   *state.State
	charger *gascharger.Charger
}

func NewContext(address farm.Address, state *state.State, charger *gascharger.Charger) *Context {
	return &Context{
		address: address,
		state:   state,
		charger: charger,
	}
}

func (c *Context) Address() farm.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}

func (c *Context) UseGas(gas uint64) {
	if c.charger != nil {
		c.charger.Charge(gas)
	}
}
