// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokenfarm/abi"
	"github.com/vechain/tokenfarm/farm"
)

const testABI = `[
	{"type":"function","name":"get","constant":true,"stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"set","stateMutability":"nonpayable","inputs":[{"name":"value","type":"uint256"}],"outputs":[]},
	{"type":"event","name":"Set","inputs":[{"name":"by","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}]}
]`

var (
	caller   = farm.BytesToAddress([]byte("caller"))
	contract = farm.BytesToAddress([]byte("contract"))
)

func newEnv(t *testing.T, name string, gas uint64, args ...any) *Environment {
	a, err := abi.New([]byte(testABI))
	require.NoError(t, err)
	method, ok := a.MethodByName(name)
	require.True(t, ok)
	input, err := method.EncodeInput(args...)
	require.NoError(t, err)

	return New(method, nil, &BlockContext{Number: 1}, &TransactionContext{Origin: caller}, NewContract(caller, contract, input, gas))
}

func TestCall(t *testing.T) {
	env := newEnv(t, "get", 100)
	data, err := env.Call(func(env *Environment) ([]any, error) {
		env.UseGas(40)
		return []any{big.NewInt(7)}, nil
	}, true)()
	require.NoError(t, err)
	assert.Len(t, data, 32)
	assert.Equal(t, byte(7), data[31])
	assert.Equal(t, uint64(60), env.contract.Gas)
	assert.Equal(t, caller, env.Caller())
	assert.Equal(t, contract, env.To())
}

func TestCallOutOfGas(t *testing.T) {
	env := newEnv(t, "get", 10)
	_, err := env.Call(func(env *Environment) ([]any, error) {
		env.UseGas(11)
		return nil, nil
	}, false)()
	assert.ErrorIs(t, err, ErrOutOfGas)
}

func TestCallError(t *testing.T) {
	cause := errors.New("reverted")
	env := newEnv(t, "set", 100, big.NewInt(1))
	_, err := env.Call(func(env *Environment) ([]any, error) {
		return nil, cause
	}, false)()
	assert.Equal(t, cause, err)

	_, err = env.Call(func(env *Environment) ([]any, error) {
		return nil, nil
	}, true)()
	assert.ErrorIs(t, err, ErrWriteProtection)
}

func TestParseArgsAndLog(t *testing.T) {
	a, err := abi.New([]byte(testABI))
	require.NoError(t, err)
	event, ok := a.EventByName("Set")
	require.True(t, ok)

	env := newEnv(t, "set", 10000, big.NewInt(42))
	_, err = env.Call(func(env *Environment) ([]any, error) {
		var value *big.Int
		env.ParseArgs(&value)
		assert.Equal(t, int64(42), value.Int64())
		env.Log(event, env.To(), env.Caller(), value)
		return nil, nil
	}, false)()
	require.NoError(t, err)

	events := env.contract.Events()
	require.Len(t, events, 1)
	assert.Equal(t, contract, events[0].Address)
	assert.Equal(t, []farm.Bytes32{event.ID(), farm.BytesToBytes32(caller[:])}, events[0].Topics)
	assert.Len(t, events[0].Data, 32)

	bad := newEnv(t, "set", 100, big.NewInt(1))
	bad.contract.Input = bad.contract.Input[:4]
	_, err = bad.Call(func(env *Environment) ([]any, error) {
		var value *big.Int
		env.ParseArgs(&value)
		return nil, nil
	}, false)()
	assert.Error(t, err)
}
