// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"

	"github.com/vechain/tokenfarm/abi"
	"github.com/vechain/tokenfarm/builtin/token"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/xenv"
)

// tokenCall is a call from a builtin contract into a token. Successful
// transfers are logged the same way a direct call logs them.
type tokenCall struct {
	env    *xenv.Environment
	event  *abi.Event
	ledger *token.Token
	sender farm.Address
}

func (c *tokenCall) TransferFrom(from, to farm.Address, amount *big.Int) (bool, error) {
	ok, err := c.ledger.TransferFrom(c.sender, from, to, amount)
	if err != nil || !ok {
		return ok, err
	}
	c.env.Log(c.event, c.ledger.Address(), from, to, amount)
	return true, nil
}

func (c *tokenCall) Transfer(to farm.Address, amount *big.Int) (bool, error) {
	ok, err := c.ledger.Transfer(c.sender, to, amount)
	if err != nil || !ok {
		return ok, err
	}
	c.env.Log(c.event, c.ledger.Address(), c.sender, to, amount)
	return true, nil
}
