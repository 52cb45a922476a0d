// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"fmt"

	"github.com/vechain/tokenfarm/abi"
	"github.com/vechain/tokenfarm/builtin/gen"
	"github.com/vechain/tokenfarm/farm"
)

type contract struct {
	name    string
	Address farm.Address
	ABI     *abi.ABI
}

// mustLoadContract binds the named contract to the given ABI. The address is derived from the name.
func mustLoadContract(name, abiName string) *contract {
	abi, err := abi.New(gen.MustABI(abiName))
	if err != nil {
		panic(fmt.Errorf("load ABI for '%s': %w", name, err))
	}

	return &contract{
		name,
		farm.BytesToAddress([]byte(name)),
		abi,
	}
}

// Name returns the contract name.
func (c *contract) Name() string {
	return c.name
}

// MustEvent returns the named event, panics if not found.
func (c *contract) MustEvent(name string) *abi.Event {
	event, ok := c.ABI.EventByName(name)
	if !ok {
		panic(fmt.Errorf("event '%s' not found in '%s'", name, c.name))
	}
	return event
}

// MustMethod returns the named method, panics if not found.
func (c *contract) MustMethod(name string) *abi.Method {
	method, ok := c.ABI.MethodByName(name)
	if !ok {
		panic(fmt.Errorf("method '%s' not found in '%s'", name, c.name))
	}
	return method
}
