// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package packer_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokenfarm/builtin"
	"github.com/vechain/tokenfarm/chain"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/genesis"
	"github.com/vechain/tokenfarm/lvldb"
	"github.com/vechain/tokenfarm/packer"
	"github.com/vechain/tokenfarm/state"
	"github.com/vechain/tokenfarm/tx"
)

var staker = genesis.DevAccounts()[1].Address

func newPacker(t *testing.T, gasLimit uint64) (*packer.Packer, *chain.Repository, *state.Stater) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, _, err := genesis.Setup(db, genesis.NewDevnet())
	require.NoError(t, err)
	stater := state.NewStater(db)
	return packer.New(repo, stater, gasLimit), repo, stater
}

func depositTx(t *testing.T, amount int64, nonce uint64) *tx.Transaction {
	data, err := builtin.TokenFarm.MustMethod("deposit").EncodeInput(big.NewInt(amount))
	require.NoError(t, err)
	return tx.NewBuilder(staker).
		Clause(tx.NewClause(builtin.TokenFarm.Address).WithData(data)).
		Gas(farm.InitialGasLimit).
		Nonce(nonce).
		Build()
}

func TestPackAndCommit(t *testing.T) {
	p, repo, stater := newPacker(t, 0)

	genesisBlock := repo.BestBlock()
	flow := p.Mock(genesisBlock, genesisBlock.Timestamp()+10)
	assert.Equal(t, uint32(1), flow.Number())
	assert.Equal(t, genesisBlock, flow.Parent())

	trx := depositTx(t, 100, 1)
	receipt, err := flow.Adopt(trx)
	require.NoError(t, err)
	assert.False(t, receipt.Reverted)
	assert.Equal(t, receipt.GasUsed, flow.GasUsed())

	_, err = flow.Adopt(trx)
	assert.True(t, packer.IsKnownTx(err))

	_, err = flow.Adopt(tx.NewBuilder(staker).Gas(1).Build())
	assert.True(t, packer.IsBadTx(err))

	b, stage, receipts := flow.Pack()
	require.NoError(t, p.Commit(b, stage, receipts))

	assert.Equal(t, b.ID(), repo.BestBlock().ID())
	assert.Equal(t, []farm.Bytes32{trx.ID()}, b.TxIDs())
	assert.Equal(t, stage.Hash(), b.StateHash())

	// committed state is visible to new states
	tvl, err := builtin.TokenFarm.WithState(stater.NewState()).GetTotalValueLocked()
	require.NoError(t, err)
	assert.Equal(t, int64(100), tvl.Int64())

	got, err := repo.GetReceipt(trx.ID())
	require.NoError(t, err)
	assert.Equal(t, receipt.GasUsed, got.GasUsed)

	// packed txs are known to following flows
	next := p.Mock(b, b.Timestamp()+10)
	_, err = next.Adopt(trx)
	assert.True(t, packer.IsKnownTx(err))
}

func TestGasLimit(t *testing.T) {
	// room for a single tx
	p, repo, _ := newPacker(t, farm.InitialGasLimit+farm.ClauseGas)

	flow := p.Mock(repo.BestBlock(), 0)
	assert.Equal(t, repo.BestBlock().Timestamp(), flow.When())

	_, err := flow.Adopt(depositTx(t, 1, 1))
	require.NoError(t, err)
	_, err = flow.Adopt(depositTx(t, 1, 2))
	assert.True(t, packer.IsGasLimitReached(err))
	assert.Len(t, flow.Receipts(), 1)
}
