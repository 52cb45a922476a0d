// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package farm

import (
	"math/big"
)

// Constants of the farm.
const (
	BlockInterval uint64 = 10 // default seconds between two blocks in solo mode.

	FeeDenominator   uint64 = 10000 // withdrawal fee is expressed in basis points.
	MaxWithdrawalFee uint64 = 1000  // 10%

	InitialWithdrawalFee uint64 = 200 // 2%

	InitialGasLimit uint64 = 10 * 1000 * 1000 // default gas provision of a transaction.
	ClauseGas       uint64 = 16000            // intrinsic gas of each clause.
)

var (
	// InitialRewardsPerBlock is 1 DAPP (18 decimals) per block, shared by all stakers.
	InitialRewardsPerBlock = big.NewInt(1e18)

	// InitialFarmFunding is the amount of DAPP handed to the farm at deployment.
	InitialFarmFunding = new(big.Int).Mul(big.NewInt(5_000_000), big.NewInt(1e18))
	// InitialDeployerLP is the amount of LP minted to the deployer for testing.
	InitialDeployerLP = new(big.Int).Mul(big.NewInt(10_000), big.NewInt(1e18))
)

// Gas costs of storage access, charged by builtin contracts.
const (
	SloadGas       uint64 = 200
	SstoreSetGas   uint64 = 20000
	SstoreResetGas uint64 = 5000
	TransferGas    uint64 = 3000
	LogGas         uint64 = 375
	LogTopicGas    uint64 = 375
	LogDataGas     uint64 = 8
)
