// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package farms

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/tokenfarm/farm"
)

// Farm is the snapshot of the ledger globals at the pending block.
type Farm struct {
	Address         farm.Address          `json:"address"`
	Owner           farm.Address          `json:"owner"`
	LPToken         farm.Address          `json:"lpToken"`
	DAPPToken       farm.Address          `json:"dappToken"`
	TotalStaked     *math.HexOrDecimal256 `json:"totalStaked"`
	StakersCount    uint64                `json:"stakersCount"`
	RewardsPerBlock *math.HexOrDecimal256 `json:"rewardsPerBlock"`
	WithdrawalFee   uint64                `json:"withdrawalFee"`
	FeeDenominator  uint64                `json:"feeDenominator"`
	CollectedFees   *math.HexOrDecimal256 `json:"collectedFees"`
	LastUpdateBlock uint32                `json:"lastUpdateBlock"`
	BlockNumber     uint32                `json:"blockNumber"`
}

// User is the projection of one participant, pending rewards previewed at BlockNumber.
type User struct {
	Address        farm.Address          `json:"address"`
	StakingBalance *math.HexOrDecimal256 `json:"stakingBalance"`
	PendingRewards *math.HexOrDecimal256 `json:"pendingRewards"`
	Checkpoint     uint32                `json:"checkpoint"`
	HasStaked      bool                  `json:"hasStaked"`
	IsStaking      bool                  `json:"isStaking"`
	BlockNumber    uint32                `json:"blockNumber"`
}

// Stakers is a page of the stakers registry.
type Stakers struct {
	Total   uint64         `json:"total"`
	Offset  uint64         `json:"offset"`
	Stakers []farm.Address `json:"stakers"`
}

func hexOrDecimal(v *big.Int) *math.HexOrDecimal256 {
	return (*math.HexOrDecimal256)(v)
}
