// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package testchain

import (
	"errors"

	"github.com/vechain/tokenfarm/abi"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/tx"
)

type Contract struct {
	chain  *Chain
	abi    *abi.ABI
	addr   farm.Address
	sender farm.Address
}

func NewContract(chain *Chain, sender farm.Address, addr farm.Address, abi *abi.ABI) *Contract {
	return &Contract{
		chain:  chain,
		abi:    abi,
		addr:   addr,
		sender: sender,
	}
}

// Attach returns a copy of the contract sending from another account.
func (c *Contract) Attach(sender farm.Address) *Contract {
	contract := *c
	contract.sender = sender
	return &contract
}

// Call calls a contract method on the pending state and returns the result.
func (c *Contract) Call(method string, args ...any) ([]byte, error) {
	clause, err := c.BuildClause(method, args...)
	if err != nil {
		return nil, err
	}
	out, err := c.chain.solo.Call(clause, c.sender, farm.InitialGasLimit)
	if err != nil {
		return nil, err
	}
	if out.VMErr != nil {
		return nil, out.VMErr
	}
	return out.Data, nil
}

// CallInto calls a contract method and decodes the result into the result argument.
func (c *Contract) CallInto(method string, result any, args ...any) error {
	data, err := c.Call(method, args...)
	if err != nil {
		return err
	}
	methodABI, ok := c.abi.MethodByName(method)
	if !ok {
		return errors.New("method not found")
	}
	return methodABI.DecodeOutput(data, result)
}

func (c *Contract) BuildClause(method string, args ...any) (*tx.Clause, error) {
	methodABI, ok := c.abi.MethodByName(method)
	if !ok {
		return nil, errors.New("method not found")
	}
	data, err := methodABI.EncodeInput(args...)
	if err != nil {
		return nil, err
	}
	return tx.NewClause(c.addr).WithData(data), nil
}

// MintTransaction sends the method in a transaction and packs the block containing it.
func (c *Contract) MintTransaction(method string, args ...any) (*tx.Receipt, error) {
	clause, err := c.BuildClause(method, args...)
	if err != nil {
		return nil, err
	}
	return c.chain.MintClauses(c.sender, clause)
}
