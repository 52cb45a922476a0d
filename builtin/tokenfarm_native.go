// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/builtin/gascharger"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/xenv"
)

func init() {
	var (
		depositEvent     = TokenFarm.MustEvent("Deposit")
		withdrawEvent    = TokenFarm.MustEvent("Withdraw")
		claimedEvent     = TokenFarm.MustEvent("RewardsClaimed")
		distributedEvent = TokenFarm.MustEvent("RewardsDistributed")
		rateUpdatedEvent = TokenFarm.MustEvent("RewardsPerBlockUpdated")
		feeUpdatedEvent  = TokenFarm.MustEvent("WithdrawalFeeUpdated")
		feesEvent        = TokenFarm.MustEvent("FeesWithdrawn")
		ownershipEvent   = TokenFarm.MustEvent("OwnershipTransferred")
		farmAddr         = TokenFarm.Address
	)

	defines := []nativeDefine{
		{"deposit", func(env *xenv.Environment) ([]any, error) {
			var amount *big.Int
			env.ParseArgs(&amount)
			charger := gascharger.New(env)

			if err := TokenFarm.Native(env, charger).Deposit(env.Caller(), amount, env.BlockContext().Number); err != nil {
				return nil, err
			}
			env.Log(depositEvent, farmAddr, env.Caller(), amount)
			return nil, nil
		}},
		{"withdraw", func(env *xenv.Environment) ([]any, error) {
			charger := gascharger.New(env)

			amount, err := TokenFarm.Native(env, charger).Withdraw(env.Caller(), env.BlockContext().Number)
			if err != nil {
				return nil, err
			}
			env.Log(withdrawEvent, farmAddr, env.Caller(), amount)
			return nil, nil
		}},
		{"claimRewards", func(env *xenv.Environment) ([]any, error) {
			charger := gascharger.New(env)

			net, _, err := TokenFarm.Native(env, charger).ClaimRewards(env.Caller(), env.BlockContext().Number)
			if err != nil {
				return nil, err
			}
			env.Log(claimedEvent, farmAddr, env.Caller(), net)
			return nil, nil
		}},
		{"distributeRewardsAll", func(env *xenv.Environment) ([]any, error) {
			charger := gascharger.New(env)

			total, err := TokenFarm.Native(env, charger).DistributeRewardsAll(env.Caller(), env.BlockContext().Number)
			if err != nil {
				return nil, err
			}
			env.Log(distributedEvent, farmAddr, total)
			return nil, nil
		}},
		{"setRewardsPerBlock", func(env *xenv.Environment) ([]any, error) {
			var rate *big.Int
			env.ParseArgs(&rate)
			charger := gascharger.New(env)

			distributed, old, err := TokenFarm.Native(env, charger).SetRewardsPerBlock(env.Caller(), rate, env.BlockContext().Number)
			if err != nil {
				return nil, err
			}
			env.Log(distributedEvent, farmAddr, distributed)
			env.Log(rateUpdatedEvent, farmAddr, old, rate)
			return nil, nil
		}},
		{"setWithdrawalFee", func(env *xenv.Environment) ([]any, error) {
			var fee *big.Int
			env.ParseArgs(&fee)
			charger := gascharger.New(env)

			old, err := TokenFarm.Native(env, charger).SetWithdrawalFee(env.Caller(), fee)
			if err != nil {
				return nil, err
			}
			env.Log(feeUpdatedEvent, farmAddr, bigUint(old), fee)
			return nil, nil
		}},
		{"withdrawFees", func(env *xenv.Environment) ([]any, error) {
			charger := gascharger.New(env)

			amount, err := TokenFarm.Native(env, charger).WithdrawFees(env.Caller())
			if err != nil {
				return nil, err
			}
			env.Log(feesEvent, farmAddr, env.Caller(), amount)
			return nil, nil
		}},
		{"transferOwnership", func(env *xenv.Environment) ([]any, error) {
			var newOwner common.Address
			env.ParseArgs(&newOwner)
			charger := gascharger.New(env)

			old, err := TokenFarm.Native(env, charger).TransferOwnership(env.Caller(), farm.Address(newOwner))
			if err != nil {
				return nil, err
			}
			env.Log(ownershipEvent, farmAddr, old, farm.Address(newOwner))
			return nil, nil
		}},
		{"getUserInfo", func(env *xenv.Environment) ([]any, error) {
			var user common.Address
			env.ParseArgs(&user)
			charger := gascharger.New(env)

			info, err := TokenFarm.Native(env, charger).GetUserInfo(farm.Address(user), env.BlockContext().Number)
			if err != nil {
				return nil, err
			}
			return []any{info.StakingBalance, info.PendingRewards, info.HasStaked, info.IsStaking}, nil
		}},
		{"users", func(env *xenv.Environment) ([]any, error) {
			var user common.Address
			env.ParseArgs(&user)
			charger := gascharger.New(env)

			p, err := TokenFarm.Native(env, charger).GetParticipant(farm.Address(user))
			if err != nil {
				return nil, err
			}
			return []any{p.StakingBalance, bigUint(uint64(p.Checkpoint)), p.PendingRewards, p.HasStaked, p.IsStaking}, nil
		}},
		{"stakers", func(env *xenv.Environment) ([]any, error) {
			var index *big.Int
			env.ParseArgs(&index)
			charger := gascharger.New(env)

			if !index.IsUint64() {
				return nil, errIndexOutOfRange
			}
			addr, err := TokenFarm.Native(env, charger).StakerAt(index.Uint64())
			if err != nil {
				return nil, err
			}
			return []any{addr}, nil
		}},
		{"getStakersCount", func(env *xenv.Environment) ([]any, error) {
			charger := gascharger.New(env)

			count, err := TokenFarm.Native(env, charger).GetStakersCount()
			if err != nil {
				return nil, err
			}
			return []any{bigUint(count)}, nil
		}},
		{"getTotalValueLocked", func(env *xenv.Environment) ([]any, error) {
			charger := gascharger.New(env)

			total, err := TokenFarm.Native(env, charger).GetTotalValueLocked()
			if err != nil {
				return nil, err
			}
			return []any{total}, nil
		}},
		{"totalStaked", func(env *xenv.Environment) ([]any, error) {
			charger := gascharger.New(env)

			total, err := TokenFarm.Native(env, charger).GetTotalValueLocked()
			if err != nil {
				return nil, err
			}
			return []any{total}, nil
		}},
		{"rewardsPerBlock", func(env *xenv.Environment) ([]any, error) {
			charger := gascharger.New(env)

			rate, err := TokenFarm.Native(env, charger).RewardsPerBlock()
			if err != nil {
				return nil, err
			}
			return []any{rate}, nil
		}},
		{"withdrawalFee", func(env *xenv.Environment) ([]any, error) {
			charger := gascharger.New(env)

			fee, err := TokenFarm.Native(env, charger).WithdrawalFee()
			if err != nil {
				return nil, err
			}
			return []any{bigUint(fee)}, nil
		}},
		{"collectedFees", func(env *xenv.Environment) ([]any, error) {
			charger := gascharger.New(env)

			fees, err := TokenFarm.Native(env, charger).CollectedFees()
			if err != nil {
				return nil, err
			}
			return []any{fees}, nil
		}},
		{"lastUpdateBlock", func(env *xenv.Environment) ([]any, error) {
			charger := gascharger.New(env)

			block, err := TokenFarm.Native(env, charger).LastUpdateBlock()
			if err != nil {
				return nil, err
			}
			return []any{bigUint(uint64(block))}, nil
		}},
		{"FEE_DENOMINATOR", func(*xenv.Environment) ([]any, error) {
			return []any{bigUint(farm.FeeDenominator)}, nil
		}},
		{"owner", func(env *xenv.Environment) ([]any, error) {
			charger := gascharger.New(env)

			owner, err := TokenFarm.Native(env, charger).Owner()
			if err != nil {
				return nil, err
			}
			return []any{owner}, nil
		}},
		{"lpToken", func(env *xenv.Environment) ([]any, error) {
			charger := gascharger.New(env)

			lp, _, err := TokenFarm.Native(env, charger).Tokens()
			if err != nil {
				return nil, err
			}
			return []any{lp}, nil
		}},
		{"dappToken", func(env *xenv.Environment) ([]any, error) {
			charger := gascharger.New(env)

			_, reward, err := TokenFarm.Native(env, charger).Tokens()
			if err != nil {
				return nil, err
			}
			return []any{reward}, nil
		}},
	}
	registerNatives(TokenFarm.contract, defines)
}

var errIndexOutOfRange = errors.New("index out of range")

func bigUint(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}
