// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package participant

import (
	"math/big"

	"github.com/vechain/tokenfarm/builtin/tokenfarm/accrual"
)

// Participant is the farm record of one staker.
type Participant struct {
	StakingBalance *big.Int
	Checkpoint     uint32 // block of the last settlement
	PendingRewards *big.Int
	HasStaked      bool // set on first deposit, never cleared
	IsStaking      bool
}

// normalize replaces nil amounts of a decoded or empty record with zero.
func (p *Participant) normalize() *Participant {
	if p.StakingBalance == nil {
		p.StakingBalance = new(big.Int)
	}
	if p.PendingRewards == nil {
		p.PendingRewards = new(big.Int)
	}
	return p
}

// IsEmpty returns whether the participant never staked.
func (p *Participant) IsEmpty() bool {
	return !p.HasStaked && p.StakingBalance.Sign() == 0 && p.PendingRewards.Sign() == 0 && p.Checkpoint == 0
}

// Preview returns the pending rewards the participant would have after settling at block.
func (p *Participant) Preview(rate *big.Int, block uint32, totalStaked *big.Int) (*big.Int, error) {
	accrued, err := accrual.Accrue(p.StakingBalance, rate, p.Checkpoint, block, totalStaked)
	if err != nil {
		return nil, err
	}
	return accrual.Add(p.PendingRewards, accrued)
}

// Settle brings pending rewards up to block and moves the checkpoint there.
// It returns the accrued amount.
func (p *Participant) Settle(rate *big.Int, block uint32, totalStaked *big.Int) (*big.Int, error) {
	pending, err := p.Preview(rate, block, totalStaked)
	if err != nil {
		return nil, err
	}
	accrued := new(big.Int).Sub(pending, p.PendingRewards)
	p.PendingRewards = pending
	p.Checkpoint = block
	return accrued, nil
}
