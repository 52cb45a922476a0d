// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package participant

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokenfarm/builtin/solidity"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/lvldb"
	"github.com/vechain/tokenfarm/state"
)

var (
	rate     = big.NewInt(1e18)
	tenEther = new(big.Int).Mul(big.NewInt(10), rate)
)

func TestSettle(t *testing.T) {
	p := (&Participant{StakingBalance: big.NewInt(100), Checkpoint: 10}).normalize()

	accrued, err := p.Settle(rate, 20, big.NewInt(100))
	require.NoError(t, err)
	assert.Zero(t, tenEther.Cmp(accrued))
	assert.Zero(t, tenEther.Cmp(p.PendingRewards))
	assert.Equal(t, uint32(20), p.Checkpoint)

	// idempotent within a block
	accrued, err = p.Settle(rate, 20, big.NewInt(100))
	require.NoError(t, err)
	assert.Zero(t, accrued.Sign())
	assert.Zero(t, tenEther.Cmp(p.PendingRewards))
}

func TestSettleWithoutStake(t *testing.T) {
	p := (&Participant{Checkpoint: 3, PendingRewards: big.NewInt(5)}).normalize()

	accrued, err := p.Settle(rate, 9, big.NewInt(100))
	require.NoError(t, err)
	assert.Zero(t, accrued.Sign())
	assert.Zero(t, big.NewInt(5).Cmp(p.PendingRewards))
	assert.Equal(t, uint32(9), p.Checkpoint)
}

func TestPreviewMatchesSettle(t *testing.T) {
	p := (&Participant{StakingBalance: big.NewInt(300), Checkpoint: 7, PendingRewards: big.NewInt(11)}).normalize()

	preview, err := p.Preview(rate, 19, big.NewInt(700))
	require.NoError(t, err)
	assert.Equal(t, uint32(7), p.Checkpoint)

	_, err = p.Settle(rate, 19, big.NewInt(700))
	require.NoError(t, err)
	assert.Zero(t, preview.Cmp(p.PendingRewards))
}

func TestSettleFutureCheckpoint(t *testing.T) {
	p := (&Participant{StakingBalance: big.NewInt(1), Checkpoint: 10}).normalize()
	_, err := p.Settle(rate, 9, big.NewInt(1))
	assert.Error(t, err)
	assert.Equal(t, uint32(10), p.Checkpoint)
}

func TestService(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	svc := New(solidity.NewContext(farm.Address{1}, state.NewStater(db).NewState(), nil))
	alice := farm.BytesToAddress([]byte("alice"))

	p, err := svc.Get(alice)
	require.NoError(t, err)
	assert.True(t, p.IsEmpty())
	assert.NotNil(t, p.StakingBalance)
	assert.NotNil(t, p.PendingRewards)

	p.StakingBalance = big.NewInt(100)
	p.Checkpoint = 4
	p.HasStaked = true
	p.IsStaking = true
	require.NoError(t, svc.Set(alice, p, true))

	got, err := svc.Get(alice)
	require.NoError(t, err)
	assert.False(t, got.IsEmpty())
	assert.Zero(t, big.NewInt(100).Cmp(got.StakingBalance))
	assert.Zero(t, got.PendingRewards.Sign())
	assert.Equal(t, uint32(4), got.Checkpoint)
	assert.True(t, got.HasStaked)
	assert.True(t, got.IsStaking)
}
