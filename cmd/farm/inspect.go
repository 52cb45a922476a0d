// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/vechain/tokenfarm/builtin"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/state"
)

type farmSnapshot struct {
	BestBlock       uint32          `yaml:"bestBlock"`
	Owner           string          `yaml:"owner"`
	LPToken         string          `yaml:"lpToken"`
	DAPPToken       string          `yaml:"dappToken"`
	TotalStaked     string          `yaml:"totalStaked"`
	RewardsPerBlock string          `yaml:"rewardsPerBlock"`
	WithdrawalFee   uint64          `yaml:"withdrawalFee"`
	CollectedFees   string          `yaml:"collectedFees"`
	LastUpdateBlock uint32          `yaml:"lastUpdateBlock"`
	RewardPool      string          `yaml:"rewardPool"`
	Stakers         []string        `yaml:"stakers"`
	User            *userSnapshot   `yaml:"user,omitempty"`
}

type userSnapshot struct {
	Address        string `yaml:"address"`
	StakingBalance string `yaml:"stakingBalance"`
	PendingRewards string `yaml:"pendingRewards"`
	Checkpoint     uint32 `yaml:"checkpoint"`
	HasStaked      bool   `yaml:"hasStaked"`
	IsStaking      bool   `yaml:"isStaking"`
}

func inspectAction(ctx *cli.Context) error {
	initLogger(ctx)

	var user *farm.Address
	if s := ctx.String(userFlag.Name); s != "" {
		addr, err := farm.ParseAddress(s)
		if err != nil {
			return errors.WithMessage(err, "user")
		}
		user = &addr
	}

	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}
	mainDB, logDB, _, err := openDatabases(ctx, gene)
	if err != nil {
		return err
	}
	defer mainDB.Close()
	defer logDB.Close()

	repo, err := initChain(gene, mainDB, logDB)
	if err != nil {
		return err
	}

	snapshot, err := inspectFarm(state.NewStater(mainDB).NewState(), repo.BestBlock().Number(), user)
	if err != nil {
		return err
	}
	return printSnapshot(os.Stdout, snapshot, ctx.Bool(rawFlag.Name))
}

// inspectFarm reads the farm as committed at best, pending rewards are previewed for the next block.
func inspectFarm(st *state.State, best uint32, user *farm.Address) (*farmSnapshot, error) {
	ledger := builtin.TokenFarm.WithState(st)

	owner, err := ledger.Owner()
	if err != nil {
		return nil, err
	}
	lp, reward, err := ledger.Tokens()
	if err != nil {
		return nil, err
	}
	tvl, err := ledger.GetTotalValueLocked()
	if err != nil {
		return nil, err
	}
	rate, err := ledger.RewardsPerBlock()
	if err != nil {
		return nil, err
	}
	fee, err := ledger.WithdrawalFee()
	if err != nil {
		return nil, err
	}
	fees, err := ledger.CollectedFees()
	if err != nil {
		return nil, err
	}
	last, err := ledger.LastUpdateBlock()
	if err != nil {
		return nil, err
	}
	pool, err := builtin.DAPPToken.WithState(st).BalanceOf(ledger.Address())
	if err != nil {
		return nil, err
	}
	count, err := ledger.GetStakersCount()
	if err != nil {
		return nil, err
	}
	stakers, err := ledger.Stakers(0, count)
	if err != nil {
		return nil, err
	}

	snapshot := &farmSnapshot{
		BestBlock:       best,
		Owner:           owner.String(),
		LPToken:         lp.String(),
		DAPPToken:       reward.String(),
		TotalStaked:     tvl.String(),
		RewardsPerBlock: rate.String(),
		WithdrawalFee:   fee,
		CollectedFees:   fees.String(),
		LastUpdateBlock: last,
		RewardPool:      pool.String(),
		Stakers:         make([]string, 0, len(stakers)),
	}
	for _, s := range stakers {
		snapshot.Stakers = append(snapshot.Stakers, s.String())
	}

	if user != nil {
		p, err := ledger.GetParticipant(*user)
		if err != nil {
			return nil, err
		}
		info, err := ledger.GetUserInfo(*user, best+1)
		if err != nil {
			return nil, err
		}
		snapshot.User = &userSnapshot{
			Address:        user.String(),
			StakingBalance: info.StakingBalance.String(),
			PendingRewards: info.PendingRewards.String(),
			Checkpoint:     p.Checkpoint,
			HasStaked:      info.HasStaked,
			IsStaking:      info.IsStaking,
		}
	}
	return snapshot, nil
}

func printSnapshot(w io.Writer, snapshot *farmSnapshot, raw bool) error {
	if raw {
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
		cfg.Fdump(w, snapshot)
		return nil
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snapshot); err != nil {
		return err
	}
	return enc.Close()
}
