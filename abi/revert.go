// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package abi

import (
	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
)

var (
	stringTy, _ = ethabi.NewType("string", "", nil)
	revertArgs  = ethabi.Arguments{{Type: stringTy}}
	// selector of Error(string)
	revertSelector = []byte{0x08, 0xc3, 0x79, 0xa0}
)

// PackRevert encodes reason as the output of a reverted call.
func PackRevert(reason string) []byte {
	data, _ := revertArgs.Pack(reason)
	return append(append([]byte{}, revertSelector...), data...)
}

// UnpackRevert resolves the reason of a reverted call output.
func UnpackRevert(data []byte) (string, error) {
	return ethabi.UnpackRevert(data)
}
