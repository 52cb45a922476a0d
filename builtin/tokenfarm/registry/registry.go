// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package registry keeps the append-only list of every address that ever staked.
package registry

import (
	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/builtin/solidity"
	"github.com/vechain/tokenfarm/farm"
)

var slotStakers = farm.Slot("stakers")

// Service is the stakers registry, in insertion order.
// Uniqueness is guaranteed by callers through the participant's HasStaked flag.
type Service struct {
	stakers *solidity.Array[farm.Address]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		stakers: solidity.NewArray[farm.Address](sctx, slotStakers),
	}
}

// Register appends addr to the registry.
func (s *Service) Register(addr farm.Address) error {
	if _, err := s.stakers.Push(addr); err != nil {
		return errors.Wrap(err, "failed to register staker")
	}
	return nil
}

// Count returns the number of registered stakers.
func (s *Service) Count() (uint64, error) {
	return s.stakers.Len()
}

// At returns the staker at index i.
func (s *Service) At(i uint64) (farm.Address, error) {
	return s.stakers.Get(i)
}

// Each calls fn for every staker in registration order, stopping at the first error.
func (s *Service) Each(fn func(addr farm.Address) error) error {
	return s.stakers.Range(0, func(_ uint64, addr farm.Address) (bool, error) {
		return true, fn(addr)
	})
}

// List returns at most limit stakers starting at offset.
func (s *Service) List(offset, limit uint64) ([]farm.Address, error) {
	list := make([]farm.Address, 0)
	if limit == 0 {
		return list, nil
	}
	err := s.stakers.Range(offset, func(_ uint64, addr farm.Address) (bool, error) {
		list = append(list, addr)
		return uint64(len(list)) < limit, nil
	})
	return list, err
}
