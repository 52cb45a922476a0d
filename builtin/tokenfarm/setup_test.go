// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokenfarm

import (
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokenfarm/builtin/token"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/lvldb"
	"github.com/vechain/tokenfarm/state"
)

var (
	farmAddr   = farm.BytesToAddress([]byte("TokenFarm"))
	lpAddr     = farm.BytesToAddress([]byte("LP"))
	rewardAddr = farm.BytesToAddress([]byte("DAPP"))
	deployer   = farm.BytesToAddress([]byte("deployer"))
	owner      = farm.BytesToAddress([]byte("owner"))
	alice      = farm.BytesToAddress([]byte("alice"))
	bob        = farm.BytesToAddress([]byte("bob"))
	carol      = farm.BytesToAddress([]byte("carol"))
)

func amt(v int64) *big.Int {
	return big.NewInt(v)
}

func ether(v int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(v), big.NewInt(1e18))
}

type testFarm struct {
	*TokenFarm
	state  *state.State
	lp     *token.Token
	reward *token.Token

	// overrides the token seen by the farm when set
	wrap func(addr farm.Address, tk Token) Token
}

// newTestFarm deploys both tokens and an initialized farm at block 0.
// The farm holds rewardPool reward tokens.
func newTestFarm(t *testing.T, rewardPool *big.Int) *testFarm {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.NewStater(db).NewState()
	tf := &testFarm{
		state:  st,
		lp:     token.New(lpAddr, st, nil),
		reward: token.New(rewardAddr, st, nil),
	}
	tf.lp.Initialize(deployer)
	tf.reward.Initialize(deployer)

	tf.TokenFarm = New(farmAddr, st, nil, func(addr farm.Address) Token {
		var tk Token
		switch addr {
		case lpAddr:
			tk = tf.lp.As(farmAddr)
		case rewardAddr:
			tk = tf.reward.As(farmAddr)
		default:
			t.Fatalf("unknown token %v", addr)
		}
		if tf.wrap != nil {
			return tf.wrap(addr, tk)
		}
		return tk
	})
	require.NoError(t, tf.Initialize(owner, lpAddr, rewardAddr, 0))
	if rewardPool != nil && rewardPool.Sign() > 0 {
		require.NoError(t, tf.reward.Mint(deployer, farmAddr, rewardPool))
	}
	return tf
}

// fund mints LP tokens to addr and approves the farm to pull them.
func (tf *testFarm) fund(t *testing.T, addr farm.Address, amount *big.Int) {
	require.NoError(t, tf.lp.Mint(deployer, addr, amount))
	require.NoError(t, tf.lp.Approve(addr, farmAddr, amount))
}

type TestFunc func(t *testing.T)

type TestSequence struct {
	farm *testFarm

	funcs []TestFunc
	mu    sync.Mutex
}

func NewSequence(tf *testFarm) *TestSequence {
	return &TestSequence{funcs: make([]TestFunc, 0), farm: tf}
}

func (st *TestSequence) AddFunc(f TestFunc) *TestSequence {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.funcs = append(st.funcs, f)
	return st
}

func (st *TestSequence) Deposit(addr farm.Address, amount *big.Int, block uint32) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		st.farm.fund(t, addr, amount)
		if err := st.farm.Deposit(addr, amount, block); err != nil {
			t.Fatalf("failed to deposit %s for %s: %v", amount, addr, err)
		}
		t.Logf("deposited %s for %s at block %d", amount, addr, block)
	})
}

func (st *TestSequence) Withdraw(addr farm.Address, block uint32) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		amount, err := st.farm.Withdraw(addr, block)
		if err != nil {
			t.Fatalf("failed to withdraw for %s: %v", addr, err)
		}
		t.Logf("withdrawn %s for %s at block %d", amount, addr, block)
	})
}

func (st *TestSequence) Claim(addr farm.Address, block uint32) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		net, fee, err := st.farm.ClaimRewards(addr, block)
		if err != nil {
			t.Fatalf("failed to claim for %s: %v", addr, err)
		}
		t.Logf("claimed %s (fee %s) for %s at block %d", net, fee, addr, block)
	})
}

func (st *TestSequence) Distribute(block uint32) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		total, err := st.farm.DistributeRewardsAll(owner, block)
		if err != nil {
			t.Fatalf("failed to distribute at block %d: %v", block, err)
		}
		t.Logf("distributed at block %d, total pending %s", block, total)
	})
}

func (st *TestSequence) SetRate(rate *big.Int, block uint32) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if _, _, err := st.farm.SetRewardsPerBlock(owner, rate, block); err != nil {
			t.Fatalf("failed to set rewards per block at %d: %v", block, err)
		}
		t.Logf("rewards per block set to %s at block %d", rate, block)
	})
}

// CheckInvariants asserts the ledger invariants after the previous steps.
func (st *TestSequence) CheckInvariants() *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		assertLedger(t, st.farm)
	})
}

func (st *TestSequence) Run(t *testing.T) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, f := range st.funcs {
		f(t)
	}

	t.Logf("All test functions executed successfully")
}

type UserAssertions struct {
	farm *testFarm
	addr farm.Address

	balance   *big.Int
	pending   *big.Int
	block     uint32
	hasStaked *bool
	isStaking *bool
}

func AssertUser(tf *testFarm, addr farm.Address) *UserAssertions {
	return &UserAssertions{farm: tf, addr: addr}
}

func (ua *UserAssertions) Balance(expected *big.Int) *UserAssertions {
	ua.balance = expected
	return ua
}

// Pending expects the previewed pending rewards at block.
func (ua *UserAssertions) Pending(expected *big.Int, block uint32) *UserAssertions {
	ua.pending = expected
	ua.block = block
	return ua
}

func (ua *UserAssertions) HasStaked(expected bool) *UserAssertions {
	ua.hasStaked = &expected
	return ua
}

func (ua *UserAssertions) IsStaking(expected bool) *UserAssertions {
	ua.isStaking = &expected
	return ua
}

func (ua *UserAssertions) Assert(t *testing.T) {
	t.Helper()

	block := ua.block
	if ua.pending == nil {
		p, err := ua.farm.GetParticipant(ua.addr)
		require.NoError(t, err)
		block = p.Checkpoint
	}
	info, err := ua.farm.GetUserInfo(ua.addr, block)
	require.NoError(t, err, "failed to get user %s", ua.addr)

	if ua.balance != nil {
		assert.Zerof(t, ua.balance.Cmp(info.StakingBalance), "user %s balance: want %s, got %s", ua.addr, ua.balance, info.StakingBalance)
	}
	if ua.pending != nil {
		assert.Zerof(t, ua.pending.Cmp(info.PendingRewards), "user %s pending: want %s, got %s", ua.addr, ua.pending, info.PendingRewards)
	}
	if ua.hasStaked != nil {
		assert.Equal(t, *ua.hasStaked, info.HasStaked, "user %s hasStaked mismatch", ua.addr)
	}
	if ua.isStaking != nil {
		assert.Equal(t, *ua.isStaking, info.IsStaking, "user %s isStaking mismatch", ua.addr)
	}
}

// assertLedger checks that total staked matches the participants and the LP custody,
// and that isStaking holds exactly for positive balances.
func assertLedger(t *testing.T, tf *testFarm) {
	t.Helper()

	stakers, err := tf.Stakers(0, 1<<32)
	require.NoError(t, err)

	sum := new(big.Int)
	for _, addr := range stakers {
		p, err := tf.GetParticipant(addr)
		require.NoError(t, err)
		assert.True(t, p.HasStaked, "registered staker %s must have staked", addr)
		assert.Equal(t, p.StakingBalance.Sign() > 0, p.IsStaking, "staker %s isStaking mismatch", addr)
		sum.Add(sum, p.StakingBalance)
	}

	tvl, err := tf.GetTotalValueLocked()
	require.NoError(t, err)
	assert.Zerof(t, sum.Cmp(tvl), "total staked: want %s, got %s", sum, tvl)

	custody, err := tf.lp.BalanceOf(farmAddr)
	require.NoError(t, err)
	assert.Zerof(t, custody.Cmp(tvl), "LP custody: want %s, got %s", tvl, custody)
}

func assertAmount(t *testing.T, expected, actual *big.Int, msgAndArgs ...any) {
	t.Helper()
	if assert.NotNil(t, actual, msgAndArgs...) {
		assert.Zerof(t, expected.Cmp(actual), "want %s, got %s", expected, actual)
	}
}
