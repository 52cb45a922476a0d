// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package accrual computes rewards earned by a stake between two blocks.
//
// The pool share is priced with the total stake at settlement time, not the
// total in effect over each sub-interval since the checkpoint. When the pool
// grew or shrank in between, the whole interval is repriced at the current
// size. Truncation remainders are lost to the staker.
package accrual

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"

	"github.com/vechain/tokenfarm/builtin/reverts"
)

// ErrOverflow is returned when an intermediate product does not fit into 256 bits.
var ErrOverflow = reverts.New("arithmetic overflow")

// FutureCheckpointError reports a checkpoint after the settlement block.
type FutureCheckpointError struct {
	Checkpoint uint32
	Block      uint32
}

func (e *FutureCheckpointError) Error() string {
	return fmt.Sprintf("accrual: checkpoint %d is after block %d", e.Checkpoint, e.Block)
}

func toUint256(v *big.Int) (*uint256.Int, error) {
	if v == nil {
		return new(uint256.Int), nil
	}
	if v.Sign() < 0 {
		return nil, ErrOverflow
	}
	u, overflow := uint256.FromBig(v)
	if overflow {
		return nil, ErrOverflow
	}
	return u, nil
}

// Accrue returns floor(balance * rate * (block - checkpoint) / total).
// It is zero when balance or total is zero.
func Accrue(balance, rate *big.Int, checkpoint, block uint32, total *big.Int) (*big.Int, error) {
	if block < checkpoint {
		return nil, &FutureCheckpointError{checkpoint, block}
	}
	if balance == nil || balance.Sign() == 0 || total == nil || total.Sign() == 0 {
		return new(big.Int), nil
	}

	s, err := toUint256(balance)
	if err != nil {
		return nil, err
	}
	r, err := toUint256(rate)
	if err != nil {
		return nil, err
	}
	t, err := toUint256(total)
	if err != nil {
		return nil, err
	}
	elapsed := uint256.NewInt(uint64(block - checkpoint))

	product, overflow := new(uint256.Int).MulOverflow(s, r)
	if overflow {
		return nil, ErrOverflow
	}
	if _, overflow = product.MulOverflow(product, elapsed); overflow {
		return nil, ErrOverflow
	}
	return product.Div(product, t).ToBig(), nil
}

// Add returns a + b, failing when the sum does not fit into 256 bits.
func Add(a, b *big.Int) (*big.Int, error) {
	x, err := toUint256(a)
	if err != nil {
		return nil, err
	}
	y, err := toUint256(b)
	if err != nil {
		return nil, err
	}
	sum, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow {
		return nil, ErrOverflow
	}
	return sum.ToBig(), nil
}

// Fee splits amount into the part withheld at feeBP basis points and the rest.
// The fee is floor(amount * feeBP / denominator).
func Fee(amount *big.Int, feeBP, denominator uint64) (fee, net *big.Int, err error) {
	a, err := toUint256(amount)
	if err != nil {
		return nil, nil, err
	}
	f, overflow := new(uint256.Int).MulOverflow(a, uint256.NewInt(feeBP))
	if overflow {
		return nil, nil, ErrOverflow
	}
	f.Div(f, uint256.NewInt(denominator))
	return f.ToBig(), new(uint256.Int).Sub(a, f).ToBig(), nil
}
