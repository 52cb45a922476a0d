// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/tokenfarm/abi"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/xenv"
)

// NativeFunc is the implementation of a builtin contract method.
type NativeFunc func(env *xenv.Environment) ([]any, error)

type methodKey struct {
	farm.Address
	abi.MethodID
}

type nativeMethod struct {
	abi *abi.Method
	run NativeFunc
}

type nativeDefine struct {
	name string
	run  NativeFunc
}

var nativeMethods = make(map[methodKey]*nativeMethod)

func registerNatives(c *contract, defines []nativeDefine) {
	for _, def := range defines {
		if method, found := c.ABI.MethodByName(def.name); found {
			nativeMethods[methodKey{c.Address, method.ID()}] = &nativeMethod{
				abi: method,
				run: def.run,
			}
		} else {
			panic("method not found: " + def.name)
		}
	}
}

// FindNativeCall find native calls.
func FindNativeCall(to farm.Address, input []byte) (*abi.Method, NativeFunc, bool) {
	methodID, err := abi.ExtractMethodID(input)
	if err != nil {
		return nil, nil, false
	}

	method := nativeMethods[methodKey{to, methodID}]
	if method == nil {
		return nil, nil, false
	}
	return method.abi, method.run, true
}
