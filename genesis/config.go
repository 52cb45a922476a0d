// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/tokenfarm/builtin"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/state"
)

// DefaultLaunchTime is the timestamp of the genesis block, unless overridden.
const DefaultLaunchTime uint64 = 1735689600 // 2025-01-01T00:00:00Z

// Config overrides the deployment parameters. Unset fields keep their defaults.
type Config struct {
	LaunchTime      uint64                `yaml:"launchTime"`
	Owner           *farm.Address         `yaml:"owner"`
	RewardsPerBlock *math.HexOrDecimal256 `yaml:"rewardsPerBlock"`
	WithdrawalFee   *uint64               `yaml:"withdrawalFee"`
	FarmFunding     *math.HexOrDecimal256 `yaml:"farmFunding"`
	DeployerLP      *math.HexOrDecimal256 `yaml:"deployerLP"`
	Stakers         []StakerAlloc         `yaml:"stakers"`
}

// StakerAlloc pre-funds an account with LP tokens, fully approved to the farm.
type StakerAlloc struct {
	Address farm.Address          `yaml:"address"`
	LP      *math.HexOrDecimal256 `yaml:"lp"`
}

// LoadConfig reads a yaml genesis config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis config")
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode genesis config")
	}
	return &cfg, cfg.Validate()
}

// Validate checks the parameters the farm would reject at runtime.
func (c *Config) Validate() error {
	if c.WithdrawalFee != nil && *c.WithdrawalFee > farm.MaxWithdrawalFee {
		return errors.Errorf("withdrawal fee %d exceeds %d", *c.WithdrawalFee, farm.MaxWithdrawalFee)
	}
	if c.Owner != nil && c.Owner.IsZero() {
		return errors.New("zero owner")
	}
	seen := make(map[farm.Address]bool)
	for _, s := range c.Stakers {
		if s.Address.IsZero() {
			return errors.New("zero staker address")
		}
		if seen[s.Address] {
			return errors.Errorf("duplicated staker %v", s.Address)
		}
		seen[s.Address] = true
	}
	return nil
}

func amountOr(v *math.HexOrDecimal256, def *big.Int) *big.Int {
	if v == nil {
		return def
	}
	return (*big.Int)(v)
}

// NewCustom creates the genesis of a farm deployed with the given parameters.
func NewCustom(cfg *Config, name string) (*Genesis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	deployer := DevAccounts()[0].Address
	owner := deployer
	if cfg.Owner != nil {
		owner = *cfg.Owner
	}
	launchTime := cfg.LaunchTime
	if launchTime == 0 {
		launchTime = DefaultLaunchTime
	}

	builder := new(Builder).
		Timestamp(launchTime).
		State(func(state *state.State) error {
			builtin.LPToken.WithState(state).Initialize(deployer)
			builtin.DAPPToken.WithState(state).Initialize(deployer)
			return builtin.TokenFarm.WithState(state).Initialize(owner, builtin.LPToken.Address, builtin.DAPPToken.Address, 0)
		})

	// reward pool and deployer test liquidity
	builder.
		Call(mustClause(builtin.DAPPToken.Address, builtin.DAPPToken.ABI, "mint", builtin.TokenFarm.Address, amountOr(cfg.FarmFunding, farm.InitialFarmFunding)), deployer).
		Call(mustClause(builtin.LPToken.Address, builtin.LPToken.ABI, "mint", deployer, amountOr(cfg.DeployerLP, farm.InitialDeployerLP)), deployer)

	for _, s := range cfg.Stakers {
		amount := amountOr(s.LP, farm.InitialDeployerLP)
		builder.
			Call(mustClause(builtin.LPToken.Address, builtin.LPToken.ABI, "mint", s.Address, amount), deployer).
			Call(mustClause(builtin.LPToken.Address, builtin.LPToken.ABI, "approve", builtin.TokenFarm.Address, amount), s.Address)
	}

	if cfg.RewardsPerBlock != nil {
		builder.Call(mustClause(builtin.TokenFarm.Address, builtin.TokenFarm.ABI, "setRewardsPerBlock", (*big.Int)(cfg.RewardsPerBlock)), owner)
	}
	if cfg.WithdrawalFee != nil {
		builder.Call(mustClause(builtin.TokenFarm.Address, builtin.TokenFarm.ABI, "setWithdrawalFee", new(big.Int).SetUint64(*cfg.WithdrawalFee)), owner)
	}

	id, err := computeID(builder)
	if err != nil {
		return nil, err
	}
	return &Genesis{builder, id, name}, nil
}
