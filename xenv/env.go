// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/abi"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/state"
	"github.com/vechain/tokenfarm/tx"
)

var (
	// ErrOutOfGas is returned when a clause exhausts its gas.
	ErrOutOfGas = errors.New("out of gas")
	// ErrWriteProtection is returned when a state changing method is called read-only.
	ErrWriteProtection = errors.New("write protection")
)

// BlockContext block context.
type BlockContext struct {
	Number uint32
	Time   uint64
}

// TransactionContext transaction context.
type TransactionContext struct {
	ID     farm.Bytes32
	Origin farm.Address
}

// Contract is the call frame of one clause.
type Contract struct {
	caller  farm.Address
	address farm.Address
	Input   []byte
	Gas     uint64 // remaining

	events tx.Events
}

// NewContract creates a call frame with the given gas provision.
func NewContract(caller, address farm.Address, input []byte, gas uint64) *Contract {
	return &Contract{
		caller:  caller,
		address: address,
		Input:   input,
		Gas:     gas,
	}
}

func (c *Contract) Caller() farm.Address  { return c.caller }
func (c *Contract) Address() farm.Address { return c.address }
func (c *Contract) Events() tx.Events     { return c.events }

// UseGas attempts the use gas and subtracts it and returns true on success.
func (c *Contract) UseGas(gas uint64) bool {
	if c.Gas < gas {
		return false
	}
	c.Gas -= gas
	return true
}

type vmError struct {
	cause error
}

// Environment an env to execute native method.
type Environment struct {
	abi      *abi.Method
	state    *state.State
	blockCtx *BlockContext
	txCtx    *TransactionContext
	contract *Contract
}

// New create a new env.
func New(
	abi *abi.Method,
	state *state.State,
	blockCtx *BlockContext,
	txCtx *TransactionContext,
	contract *Contract,
) *Environment {
	return &Environment{
		abi:      abi,
		state:    state,
		blockCtx: blockCtx,
		txCtx:    txCtx,
		contract: contract,
	}
}

func (env *Environment) State() *state.State                     { return env.state }
func (env *Environment) TransactionContext() *TransactionContext { return env.txCtx }
func (env *Environment) BlockContext() *BlockContext             { return env.blockCtx }
func (env *Environment) Caller() farm.Address                    { return env.contract.Caller() }
func (env *Environment) To() farm.Address                        { return env.contract.Address() }

func (env *Environment) UseGas(gas uint64) {
	if !env.contract.UseGas(gas) {
		panic(&vmError{ErrOutOfGas})
	}
}

func (env *Environment) ParseArgs(val any) {
	if err := env.abi.DecodeInput(env.contract.Input, val); err != nil {
		// as vm error
		panic(&vmError{errors.WithMessage(err, "decode native input")})
	}
}

// Log emits an event of the contract at address. Args are given in declaration order.
func (env *Environment) Log(event *abi.Event, address farm.Address, args ...any) {
	topics, data, err := event.Encode(args...)
	if err != nil {
		panic(errors.WithMessage(err, "encode native event"))
	}
	env.UseGas(farm.LogGas + farm.LogTopicGas*uint64(len(topics)) + farm.LogDataGas*uint64(len(data)))

	env.contract.events = append(env.contract.events, &tx.Event{
		Address: address,
		Topics:  topics,
		Data:    data,
	})
}

func (env *Environment) Stop(vmerr error) {
	panic(&vmError{vmerr})
}

// Call wraps proc into a call of the native method. Gas exhaustion and bad input
// surface as errors, any other panic is a bug and propagates.
func (env *Environment) Call(proc func(env *Environment) ([]any, error), readonly bool) func() ([]byte, error) {
	return func() (data []byte, err error) {
		if readonly && !env.abi.Const() {
			return nil, ErrWriteProtection
		}

		defer func() {
			if e := recover(); e != nil {
				if rec, ok := e.(*vmError); ok {
					err = rec.cause
				} else {
					panic(e)
				}
			}
		}()
		output, err := proc(env)
		if err != nil {
			return nil, err
		}
		data, err = env.abi.EncodeOutput(output...)
		if err != nil {
			panic(errors.WithMessage(err, "encode native output"))
		}
		return
	}
}
