// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package globalstats

import (
	"math/big"

	"github.com/vechain/tokenfarm/builtin/solidity"
	"github.com/vechain/tokenfarm/farm"
)

var (
	slotTotalStaked     = farm.Slot("total-staked")
	slotRewardsPerBlock = farm.Slot("rewards-per-block")
	slotWithdrawalFee   = farm.Slot("withdrawal-fee")
	slotCollectedFees   = farm.Slot("collected-fees")
	slotLastUpdateBlock = farm.Slot("last-update-block")
)

// Service manages farm-wide totals and parameters.
type Service struct {
	totalStaked     *solidity.Uint256
	rewardsPerBlock *solidity.Uint256
	withdrawalFee   *solidity.Uint256
	collectedFees   *solidity.Uint256
	lastUpdateBlock *solidity.Uint256
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		totalStaked:     solidity.NewUint256(sctx, slotTotalStaked),
		rewardsPerBlock: solidity.NewUint256(sctx, slotRewardsPerBlock),
		withdrawalFee:   solidity.NewUint256(sctx, slotWithdrawalFee),
		collectedFees:   solidity.NewUint256(sctx, slotCollectedFees),
		lastUpdateBlock: solidity.NewUint256(sctx, slotLastUpdateBlock),
	}
}

// TotalStaked returns the sum of all staking balances.
func (s *Service) TotalStaked() (*big.Int, error) {
	return s.totalStaked.Get()
}

func (s *Service) AddStake(amount *big.Int) error {
	return s.totalStaked.Add(amount)
}

func (s *Service) RemoveStake(amount *big.Int) error {
	return s.totalStaked.Sub(amount)
}

func (s *Service) RewardsPerBlock() (*big.Int, error) {
	return s.rewardsPerBlock.Get()
}

// SetRewardsPerBlock replaces the rate and returns the previous one.
func (s *Service) SetRewardsPerBlock(rate *big.Int) (*big.Int, error) {
	old, err := s.rewardsPerBlock.Get()
	if err != nil {
		return nil, err
	}
	s.rewardsPerBlock.Set(rate)
	return old, nil
}

// WithdrawalFee returns the claim fee in basis points.
func (s *Service) WithdrawalFee() (uint64, error) {
	fee, err := s.withdrawalFee.Get()
	if err != nil {
		return 0, err
	}
	return fee.Uint64(), nil
}

// SetWithdrawalFee replaces the fee and returns the previous one.
func (s *Service) SetWithdrawalFee(fee uint64) (uint64, error) {
	old, err := s.WithdrawalFee()
	if err != nil {
		return 0, err
	}
	s.withdrawalFee.Set(new(big.Int).SetUint64(fee))
	return old, nil
}

func (s *Service) CollectedFees() (*big.Int, error) {
	return s.collectedFees.Get()
}

func (s *Service) AddFees(amount *big.Int) error {
	return s.collectedFees.Add(amount)
}

// TakeFees zeroes the collected fees and returns what was collected.
func (s *Service) TakeFees() (*big.Int, error) {
	fees, err := s.collectedFees.Get()
	if err != nil {
		return nil, err
	}
	s.collectedFees.Set(new(big.Int))
	return fees, nil
}

func (s *Service) LastUpdateBlock() (uint32, error) {
	n, err := s.lastUpdateBlock.Get()
	if err != nil {
		return 0, err
	}
	return uint32(n.Uint64()), nil
}

func (s *Service) SetLastUpdateBlock(block uint32) {
	s.lastUpdateBlock.Set(new(big.Int).SetUint64(uint64(block)))
}
