// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokenfarm

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/builtin/gascharger"
	"github.com/vechain/tokenfarm/builtin/solidity"
	"github.com/vechain/tokenfarm/builtin/tokenfarm/accrual"
	"github.com/vechain/tokenfarm/builtin/tokenfarm/globalstats"
	"github.com/vechain/tokenfarm/builtin/tokenfarm/participant"
	"github.com/vechain/tokenfarm/builtin/tokenfarm/registry"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/log"
	"github.com/vechain/tokenfarm/state"
)

var (
	slotOwner       = farm.Slot("owner")
	slotLPToken     = farm.Slot("lp-token")
	slotRewardToken = farm.Slot("reward-token")
	slotLock        = farm.Slot("reentrancy-lock")

	logger = log.WithContext("pkg", "tokenfarm")
)

func SetLogger(l log.Logger) {
	logger = l
}

// Token is a token contract as seen by the farm: calls are made with the farm as sender.
// A false result or an error is a failed transfer.
type Token interface {
	TransferFrom(from, to farm.Address, amount *big.Int) (bool, error)
	Transfer(to farm.Address, amount *big.Int) (bool, error)
}

// TokenResolver returns the token deployed at addr.
type TokenResolver func(addr farm.Address) Token

// UserInfo is the read-only view of a participant.
type UserInfo struct {
	StakingBalance *big.Int
	PendingRewards *big.Int // including rewards not settled yet
	HasStaked      bool
	IsStaking      bool
}

// TokenFarm implements the reward accrual ledger of the `TokenFarm` contract.
type TokenFarm struct {
	addr    farm.Address
	resolve TokenResolver

	owner       *solidity.Address
	lpToken     *solidity.Address
	rewardToken *solidity.Address
	lock        *solidity.Uint256

	participantService *participant.Service
	registryService    *registry.Service
	globalStatsService *globalstats.Service
}

// New create a new instance.
func New(addr farm.Address, state *state.State, charger *gascharger.Charger, resolve TokenResolver) *TokenFarm {
	sctx := solidity.NewContext(addr, state, charger)

	return &TokenFarm{
		addr:    addr,
		resolve: resolve,

		owner:       solidity.NewAddress(sctx, slotOwner),
		lpToken:     solidity.NewAddress(sctx, slotLPToken),
		rewardToken: solidity.NewAddress(sctx, slotRewardToken),
		lock:        solidity.NewUint256(sctx, slotLock),

		participantService: participant.New(sctx),
		registryService:    registry.New(sctx),
		globalStatsService: globalstats.New(sctx),
	}
}

// Address returns the account of the farm, custodian of staked tokens and rewards.
func (f *TokenFarm) Address() farm.Address {
	return f.addr
}

//
// Getters - no state change
//

// Owner returns the administrator of the farm.
func (f *TokenFarm) Owner() (farm.Address, error) {
	return f.owner.Get()
}

// Tokens returns the addresses of the staked and the reward token.
func (f *TokenFarm) Tokens() (lp farm.Address, reward farm.Address, err error) {
	if lp, err = f.lpToken.Get(); err != nil {
		return
	}
	reward, err = f.rewardToken.Get()
	return
}

// GetTotalValueLocked returns the sum of all staking balances.
func (f *TokenFarm) GetTotalValueLocked() (*big.Int, error) {
	return f.globalStatsService.TotalStaked()
}

// GetStakersCount returns the number of addresses that ever staked.
func (f *TokenFarm) GetStakersCount() (uint64, error) {
	return f.registryService.Count()
}

// StakerAt returns the staker registered at index i.
func (f *TokenFarm) StakerAt(i uint64) (farm.Address, error) {
	return f.registryService.At(i)
}

// Stakers returns a page of the stakers registry.
func (f *TokenFarm) Stakers(offset, limit uint64) ([]farm.Address, error) {
	return f.registryService.List(offset, limit)
}

func (f *TokenFarm) RewardsPerBlock() (*big.Int, error) {
	return f.globalStatsService.RewardsPerBlock()
}

// WithdrawalFee returns the claim fee in basis points.
func (f *TokenFarm) WithdrawalFee() (uint64, error) {
	return f.globalStatsService.WithdrawalFee()
}

func (f *TokenFarm) CollectedFees() (*big.Int, error) {
	return f.globalStatsService.CollectedFees()
}

func (f *TokenFarm) LastUpdateBlock() (uint32, error) {
	return f.globalStatsService.LastUpdateBlock()
}

// GetParticipant returns the stored record of addr, without settling it.
func (f *TokenFarm) GetParticipant(addr farm.Address) (*participant.Participant, error) {
	return f.participantService.Get(addr)
}

// GetUserInfo returns the participant with pending rewards previewed at block.
// The result equals what settling at block would store.
func (f *TokenFarm) GetUserInfo(addr farm.Address, block uint32) (*UserInfo, error) {
	p, err := f.participantService.Get(addr)
	if err != nil {
		return nil, err
	}
	rate, total, err := f.accrualParams()
	if err != nil {
		return nil, err
	}
	pending, err := p.Preview(rate, block, total)
	if err != nil {
		return nil, err
	}
	return &UserInfo{
		StakingBalance: p.StakingBalance,
		PendingRewards: pending,
		HasStaked:      p.HasStaked,
		IsStaking:      p.IsStaking,
	}, nil
}

//
// Setters - state change
//

// Initialize deploys the farm: sets the owner, both tokens and the initial parameters.
func (f *TokenFarm) Initialize(owner, lpToken, rewardToken farm.Address, block uint32) error {
	current, err := f.owner.Get()
	if err != nil {
		return err
	}
	if !current.IsZero() {
		return ErrAlreadyInitialized
	}
	if owner.IsZero() {
		return ErrInvalidOwner
	}

	f.owner.Set(owner)
	f.lpToken.Set(lpToken)
	f.rewardToken.Set(rewardToken)
	if _, err := f.globalStatsService.SetRewardsPerBlock(farm.InitialRewardsPerBlock); err != nil {
		return err
	}
	if _, err := f.globalStatsService.SetWithdrawalFee(farm.InitialWithdrawalFee); err != nil {
		return err
	}
	f.globalStatsService.SetLastUpdateBlock(block)

	logger.Info("farm initialized", "owner", owner, "lp", lpToken, "reward", rewardToken, "block", block)
	return nil
}

// Deposit stakes amount LP tokens of caller. Rewards earned so far are settled
// with the balances in effect before the deposit.
func (f *TokenFarm) Deposit(caller farm.Address, amount *big.Int, block uint32) (err error) {
	defer func() { recordOperation("deposit", err) }()

	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if err := f.enter(); err != nil {
		return err
	}
	defer f.leave()

	p, err := f.participantService.Get(caller)
	if err != nil {
		return err
	}
	isNew := p.IsEmpty()
	if err := f.settle(p, block); err != nil {
		return err
	}

	lp, err := f.token(f.lpToken)
	if err != nil {
		return err
	}
	if err := transferred(lp.TransferFrom(caller, f.addr, amount)); err != nil {
		return err
	}

	if !p.HasStaked {
		if err := f.registryService.Register(caller); err != nil {
			return err
		}
		p.HasStaked = true
	}
	p.IsStaking = true
	if p.StakingBalance, err = accrual.Add(p.StakingBalance, amount); err != nil {
		return err
	}
	if err := f.participantService.Set(caller, p, isNew); err != nil {
		return err
	}
	if err := f.globalStatsService.AddStake(amount); err != nil {
		return err
	}

	logger.Debug("deposit", "user", caller, "amount", amount, "block", block)
	return nil
}

// Withdraw returns the whole staking balance of caller.
func (f *TokenFarm) Withdraw(caller farm.Address, block uint32) (amount *big.Int, err error) {
	defer func() { recordOperation("withdraw", err) }()

	if err := f.enter(); err != nil {
		return nil, err
	}
	defer f.leave()

	p, err := f.participantService.Get(caller)
	if err != nil {
		return nil, err
	}
	if !p.IsStaking {
		return nil, ErrNotStaking
	}
	if err := f.settle(p, block); err != nil {
		return nil, err
	}

	amount = p.StakingBalance
	if amount.Sign() == 0 {
		return nil, ErrNoTokens
	}
	p.StakingBalance = new(big.Int)
	p.IsStaking = false
	if err := f.participantService.Set(caller, p, false); err != nil {
		return nil, err
	}
	if err := f.globalStatsService.RemoveStake(amount); err != nil {
		return nil, errors.WithMessage(err, "total staked")
	}

	// state is final before calling out
	lp, err := f.token(f.lpToken)
	if err != nil {
		return nil, err
	}
	if err := transferred(lp.Transfer(caller, amount)); err != nil {
		return nil, err
	}

	logger.Debug("withdraw", "user", caller, "amount", amount, "block", block)
	return amount, nil
}

// ClaimRewards pays the pending rewards of caller, net of the withdrawal fee.
func (f *TokenFarm) ClaimRewards(caller farm.Address, block uint32) (net *big.Int, fee *big.Int, err error) {
	defer func() { recordOperation("claim", err) }()

	if err := f.enter(); err != nil {
		return nil, nil, err
	}
	defer f.leave()

	p, err := f.participantService.Get(caller)
	if err != nil {
		return nil, nil, err
	}
	isNew := p.IsEmpty()
	if err := f.settle(p, block); err != nil {
		return nil, nil, err
	}
	pending := p.PendingRewards
	if pending.Sign() == 0 {
		return nil, nil, ErrNoRewards
	}

	p.PendingRewards = new(big.Int)
	if err := f.participantService.Set(caller, p, isNew); err != nil {
		return nil, nil, err
	}
	feeBP, err := f.globalStatsService.WithdrawalFee()
	if err != nil {
		return nil, nil, err
	}
	if fee, net, err = accrual.Fee(pending, feeBP, farm.FeeDenominator); err != nil {
		return nil, nil, err
	}
	if err := f.globalStatsService.AddFees(fee); err != nil {
		return nil, nil, err
	}

	reward, err := f.token(f.rewardToken)
	if err != nil {
		return nil, nil, err
	}
	if err := transferred(reward.Transfer(caller, net)); err != nil {
		return nil, nil, err
	}

	logger.Debug("claim", "user", caller, "net", net, "fee", fee, "block", block)
	return net, fee, nil
}

// DistributeRewardsAll settles every staking participant, in registration order,
// and returns the sum of their pending rewards. Cost grows with the registry.
func (f *TokenFarm) DistributeRewardsAll(caller farm.Address, block uint32) (total *big.Int, err error) {
	defer func() { recordOperation("distribute", err) }()

	if err := f.onlyOwner(caller); err != nil {
		return nil, err
	}
	return f.distribute(block)
}

// SetRewardsPerBlock settles everyone at the old rate, then switches to rate.
func (f *TokenFarm) SetRewardsPerBlock(caller farm.Address, rate *big.Int, block uint32) (distributed *big.Int, old *big.Int, err error) {
	defer func() { recordOperation("set_rewards_per_block", err) }()

	if err := f.onlyOwner(caller); err != nil {
		return nil, nil, err
	}
	if rate == nil || rate.Sign() < 0 || rate.BitLen() > 256 {
		return nil, nil, ErrOverflow
	}
	if distributed, err = f.distribute(block); err != nil {
		return nil, nil, err
	}
	if old, err = f.globalStatsService.SetRewardsPerBlock(rate); err != nil {
		return nil, nil, err
	}
	f.globalStatsService.SetLastUpdateBlock(block)

	logger.Info("rewards per block updated", "old", old, "new", rate, "block", block)
	return distributed, old, nil
}

// SetWithdrawalFee sets the claim fee, in basis points, at most farm.MaxWithdrawalFee.
func (f *TokenFarm) SetWithdrawalFee(caller farm.Address, fee *big.Int) (old uint64, err error) {
	defer func() { recordOperation("set_withdrawal_fee", err) }()

	if err := f.onlyOwner(caller); err != nil {
		return 0, err
	}
	if fee == nil || fee.Sign() < 0 || fee.Cmp(new(big.Int).SetUint64(farm.MaxWithdrawalFee)) > 0 {
		return 0, ErrFeeTooHigh
	}
	if old, err = f.globalStatsService.SetWithdrawalFee(fee.Uint64()); err != nil {
		return 0, err
	}

	logger.Info("withdrawal fee updated", "old", old, "new", fee)
	return old, nil
}

// WithdrawFees sends all collected fees to the owner.
func (f *TokenFarm) WithdrawFees(caller farm.Address) (amount *big.Int, err error) {
	defer func() { recordOperation("withdraw_fees", err) }()

	if err := f.onlyOwner(caller); err != nil {
		return nil, err
	}
	fees, err := f.globalStatsService.CollectedFees()
	if err != nil {
		return nil, err
	}
	if fees.Sign() == 0 {
		return nil, ErrNoFees
	}
	if _, err := f.globalStatsService.TakeFees(); err != nil {
		return nil, err
	}

	reward, err := f.token(f.rewardToken)
	if err != nil {
		return nil, err
	}
	if err := transferred(reward.Transfer(caller, fees)); err != nil {
		return nil, err
	}

	logger.Info("fees withdrawn", "owner", caller, "amount", fees)
	return fees, nil
}

// TransferOwnership hands the administration of the farm to newOwner.
func (f *TokenFarm) TransferOwnership(caller, newOwner farm.Address) (old farm.Address, err error) {
	defer func() { recordOperation("transfer_ownership", err) }()

	if err := f.onlyOwner(caller); err != nil {
		return farm.Address{}, err
	}
	if newOwner.IsZero() {
		return farm.Address{}, ErrInvalidOwner
	}
	f.owner.Set(newOwner)

	logger.Info("ownership transferred", "old", caller, "new", newOwner)
	return caller, nil
}

//
// internals
//

func (f *TokenFarm) onlyOwner(caller farm.Address) error {
	owner, err := f.owner.Get()
	if err != nil {
		return err
	}
	if caller != owner {
		return ErrUnauthorized
	}
	return nil
}

// enter takes the re-entrancy lock. Callers must defer leave once it succeeded.
func (f *TokenFarm) enter() error {
	locked, err := f.lock.Get()
	if err != nil {
		return err
	}
	if locked.Sign() != 0 {
		return ErrReentrantCall
	}
	f.lock.Set(big.NewInt(1))
	return nil
}

func (f *TokenFarm) leave() {
	f.lock.Set(new(big.Int))
}

func (f *TokenFarm) accrualParams() (rate *big.Int, total *big.Int, err error) {
	if rate, err = f.globalStatsService.RewardsPerBlock(); err != nil {
		return
	}
	total, err = f.globalStatsService.TotalStaked()
	return
}

// settle updates p in memory; callers persist it.
func (f *TokenFarm) settle(p *participant.Participant, block uint32) error {
	rate, total, err := f.accrualParams()
	if err != nil {
		return err
	}
	_, err = p.Settle(rate, block, total)
	return err
}

func (f *TokenFarm) distribute(block uint32) (*big.Int, error) {
	rate, total, err := f.accrualParams()
	if err != nil {
		return nil, err
	}

	sum := new(big.Int)
	settled := 0
	err = f.registryService.Each(func(addr farm.Address) error {
		p, err := f.participantService.Get(addr)
		if err != nil {
			return err
		}
		if !p.IsStaking {
			return nil
		}
		if _, err := p.Settle(rate, block, total); err != nil {
			return err
		}
		if err := f.participantService.Set(addr, p, false); err != nil {
			return err
		}
		settled++
		sum, err = accrual.Add(sum, p.PendingRewards)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("rewards distributed", "participants", settled, "total", sum, "block", block)
	return sum, nil
}

func (f *TokenFarm) token(slot *solidity.Address) (Token, error) {
	addr, err := slot.Get()
	if err != nil {
		return nil, err
	}
	return f.resolve(addr), nil
}

// transferred maps the outcome of a token call to ErrTransferFailed.
func transferred(ok bool, err error) error {
	if err != nil {
		logger.Debug("token call failed", "err", err)
		return ErrTransferFailed
	}
	if !ok {
		return ErrTransferFailed
	}
	return nil
}
