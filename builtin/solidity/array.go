// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"errors"
	"math/big"

	"github.com/vechain/tokenfarm/farm"
)

var errIndexOutOfRange = errors.New("array index out of range")

// Array is an append-only storage array: a length slot and index keyed elements.
type Array[V any] struct {
	length   *Uint256
	elements *Mapping[farm.Bytes32, V]
}

func NewArray[V any](context *Context, pos farm.Bytes32) *Array[V] {
	return &Array[V]{
		length:   NewUint256(context, pos),
		elements: NewMapping[farm.Bytes32, V](context, pos),
	}
}

// Len returns the count of elements.
func (a *Array[V]) Len() (uint64, error) {
	n, err := a.length.Get()
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// Get returns the element at index i.
func (a *Array[V]) Get(i uint64) (v V, err error) {
	n, err := a.Len()
	if err != nil {
		return v, err
	}
	if i >= n {
		return v, errIndexOutOfRange
	}
	return a.elements.Get(farm.Uint64ToBytes32(i))
}

// Push appends v and returns its index.
func (a *Array[V]) Push(v V) (uint64, error) {
	n, err := a.Len()
	if err != nil {
		return 0, err
	}
	if err := a.elements.Set(farm.Uint64ToBytes32(n), v, true); err != nil {
		return 0, err
	}
	a.length.Set(new(big.Int).SetUint64(n + 1))
	return n, nil
}

// Range calls fn for each element in index order, starting at offset, stopping when fn returns false.
func (a *Array[V]) Range(offset uint64, fn func(i uint64, v V) (bool, error)) error {
	n, err := a.Len()
	if err != nil {
		return err
	}
	for i := offset; i < n; i++ {
		v, err := a.elements.Get(farm.Uint64ToBytes32(i))
		if err != nil {
			return err
		}
		next, err := fn(i, v)
		if err != nil {
			return err
		}
		if !next {
			return nil
		}
	}
	return nil
}
