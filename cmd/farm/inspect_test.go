// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vechain/tokenfarm/builtin"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/genesis"
	"github.com/vechain/tokenfarm/test/testchain"
	"github.com/vechain/tokenfarm/tx"
)

func TestInspectFarm(t *testing.T) {
	farmChain, err := testchain.NewDefault()
	require.NoError(t, err)
	defer farmChain.Close()

	staker := genesis.DevAccounts()[1].Address
	data, err := builtin.TokenFarm.MustMethod("deposit").EncodeInput(big.NewInt(100))
	require.NoError(t, err)
	_, err = farmChain.MintClauses(staker, tx.NewClause(builtin.TokenFarm.Address).WithData(data))
	require.NoError(t, err)

	snapshot, err := inspectFarm(farmChain.State(), farmChain.BestBlock().Number(), &staker)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), snapshot.BestBlock)
	assert.Equal(t, "100", snapshot.TotalStaked)
	assert.Equal(t, []string{staker.String()}, snapshot.Stakers)
	assert.Equal(t, farm.InitialFarmFunding.String(), snapshot.RewardPool)
	require.NotNil(t, snapshot.User)
	assert.True(t, snapshot.User.IsStaking)
	assert.Equal(t, uint32(1), snapshot.User.Checkpoint)
	// one block of rewards ahead of the checkpoint
	assert.Equal(t, farm.InitialRewardsPerBlock.String(), snapshot.User.PendingRewards)

	var buf bytes.Buffer
	require.NoError(t, printSnapshot(&buf, snapshot, false))
	var decoded farmSnapshot
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, snapshot.Stakers, decoded.Stakers)
	assert.Equal(t, snapshot.User.PendingRewards, decoded.User.PendingRewards)

	buf.Reset()
	require.NoError(t, printSnapshot(&buf, snapshot, true))
	assert.Contains(t, buf.String(), "StakingBalance")
}

func TestSyncLogDB(t *testing.T) {
	farmChain, err := testchain.NewDefault()
	require.NoError(t, err)
	defer farmChain.Close()

	staker := genesis.DevAccounts()[1].Address
	data, err := builtin.TokenFarm.MustMethod("deposit").EncodeInput(big.NewInt(100))
	require.NoError(t, err)
	_, err = farmChain.MintClauses(staker, tx.NewClause(builtin.TokenFarm.Address).WithData(data))
	require.NoError(t, err)
	require.NoError(t, farmChain.MintBlocks(2))

	// drop the logs of the last blocks, as if the node stopped before writing them
	w := farmChain.LogDB().NewWriter()
	require.NoError(t, w.Truncate(1))

	require.NoError(t, syncLogDB(farmChain.Repo(), farmChain.LogDB(), 0))
	newest, err := farmChain.LogDB().NewestBlockID()
	require.NoError(t, err)
	assert.Equal(t, farmChain.BestBlock().ID(), newest)

	events, err := farmChain.LogDB().FilterEvents(t.Context(), nil)
	require.NoError(t, err)
	// genesis deployment plus the deposit
	assert.Len(t, events, 2+2*(len(genesis.DevAccounts())-1)+2)
}
