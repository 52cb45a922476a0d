// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokenfarm/abi"
	"github.com/vechain/tokenfarm/builtin"
	"github.com/vechain/tokenfarm/builtin/tokenfarm"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/genesis"
	"github.com/vechain/tokenfarm/lvldb"
	"github.com/vechain/tokenfarm/runtime"
	"github.com/vechain/tokenfarm/state"
	"github.com/vechain/tokenfarm/tx"
	"github.com/vechain/tokenfarm/xenv"
)

var (
	deployer = genesis.DevAccounts()[0].Address
	staker   = genesis.DevAccounts()[1].Address
)

func newRuntime(t *testing.T, block uint32) *runtime.Runtime {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, _, err = genesis.Setup(db, genesis.NewDevnet())
	require.NoError(t, err)

	return runtime.New(state.NewStater(db).NewState(), &xenv.BlockContext{Number: block, Time: 1})
}

func clause(t *testing.T, to farm.Address, contractABI *abi.ABI, method string, args ...any) *tx.Clause {
	m, ok := contractABI.MethodByName(method)
	require.True(t, ok, method)
	data, err := m.EncodeInput(args...)
	require.NoError(t, err)
	return tx.NewClause(to).WithData(data)
}

func farmClause(t *testing.T, method string, args ...any) *tx.Clause {
	return clause(t, builtin.TokenFarm.Address, builtin.TokenFarm.ABI, method, args...)
}

func totalStaked(t *testing.T, rt *runtime.Runtime) *big.Int {
	tvl, err := builtin.TokenFarm.WithState(rt.State()).GetTotalValueLocked()
	require.NoError(t, err)
	return tvl
}

func TestExecuteDeposit(t *testing.T) {
	rt := newRuntime(t, 1)

	trx := tx.NewBuilder(staker).Clause(farmClause(t, "deposit", big.NewInt(100))).Gas(farm.InitialGasLimit).Build()
	receipt, err := rt.ExecuteTransaction(trx)
	require.NoError(t, err)
	require.False(t, receipt.Reverted, receipt.RevertReason)
	assert.Equal(t, trx.ID(), receipt.TxID)
	assert.Equal(t, uint32(1), receipt.BlockNumber)
	assert.Greater(t, receipt.GasUsed, farm.ClauseGas)
	assert.Less(t, receipt.GasUsed, trx.Gas())

	require.Len(t, receipt.Outputs, 1)
	events := receipt.Outputs[0].Events
	require.Len(t, events, 2)

	transfer := builtin.LPToken.MustEvent("Transfer")
	assert.Equal(t, builtin.LPToken.Address, events[0].Address)
	assert.Equal(t, transfer.ID(), events[0].Topics[0])

	deposit := builtin.TokenFarm.MustEvent("Deposit")
	assert.Equal(t, builtin.TokenFarm.Address, events[1].Address)
	decoded, err := deposit.DecodeToMap(events[1].Topics, events[1].Data)
	require.NoError(t, err)
	assert.Equal(t, int64(100), decoded["amount"].(*big.Int).Int64())

	assert.Equal(t, int64(100), totalStaked(t, rt).Int64())
}

func TestTransactionIsAtomic(t *testing.T) {
	rt := newRuntime(t, 1)
	before := rt.State().Stage().Hash()

	// claiming in the deposit block has nothing to claim, the deposit is rolled back
	trx := tx.NewBuilder(staker).
		Clause(farmClause(t, "deposit", big.NewInt(100))).
		Clause(farmClause(t, "claimRewards")).
		Gas(farm.InitialGasLimit).
		Build()
	receipt, err := rt.ExecuteTransaction(trx)
	require.NoError(t, err)
	assert.True(t, receipt.Reverted)
	assert.Equal(t, "No rewards to claim", receipt.RevertReason)
	assert.Empty(t, receipt.Outputs)

	assert.Zero(t, totalStaked(t, rt).Sign())
	assert.Equal(t, before, rt.State().Stage().Hash())
}

func TestTransferFailureRollsBack(t *testing.T) {
	rt := newRuntime(t, 1)

	// the deployer holds LP but never approved the farm
	trx := tx.NewBuilder(deployer).Clause(farmClause(t, "deposit", big.NewInt(100))).Gas(farm.InitialGasLimit).Build()
	receipt, err := rt.ExecuteTransaction(trx)
	require.NoError(t, err)
	assert.True(t, receipt.Reverted)
	assert.Equal(t, "Transfer failed", receipt.RevertReason)

	count, err := builtin.TokenFarm.WithState(rt.State()).GetStakersCount()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestWithdrawTransferFailureRollsBack(t *testing.T) {
	rt := newRuntime(t, 1)

	receipt, err := rt.ExecuteTransaction(tx.NewBuilder(staker).Clause(farmClause(t, "deposit", big.NewInt(100))).Gas(farm.InitialGasLimit).Build())
	require.NoError(t, err)
	require.False(t, receipt.Reverted, receipt.RevertReason)

	// the farm can no longer pay the principal back
	ok, err := builtin.LPToken.WithState(rt.State()).As(builtin.TokenFarm.Address).Transfer(deployer, big.NewInt(100))
	require.NoError(t, err)
	require.True(t, ok)
	before := rt.State().Stage().Hash()

	receipt, err = rt.ExecuteTransaction(tx.NewBuilder(staker).Clause(farmClause(t, "withdraw")).Gas(farm.InitialGasLimit).Build())
	require.NoError(t, err)
	assert.True(t, receipt.Reverted)
	assert.Equal(t, "Transfer failed", receipt.RevertReason)
	assert.Empty(t, receipt.Outputs)

	p, err := builtin.TokenFarm.WithState(rt.State()).GetParticipant(staker)
	require.NoError(t, err)
	assert.Equal(t, int64(100), p.StakingBalance.Int64())
	assert.True(t, p.IsStaking)
	assert.True(t, p.HasStaked)
	assert.Equal(t, int64(100), totalStaked(t, rt).Int64())
	assert.Equal(t, before, rt.State().Stage().Hash())
}

func TestOutOfGas(t *testing.T) {
	rt := newRuntime(t, 1)

	gas := farm.ClauseGas + 1000
	trx := tx.NewBuilder(staker).Clause(farmClause(t, "deposit", big.NewInt(100))).Gas(gas).Build()
	receipt, err := rt.ExecuteTransaction(trx)
	require.NoError(t, err)
	assert.True(t, receipt.Reverted)
	assert.Equal(t, xenv.ErrOutOfGas.Error(), receipt.RevertReason)
	assert.Equal(t, gas, receipt.GasUsed)
	assert.Zero(t, totalStaked(t, rt).Sign())
}

func TestInvalidTransactions(t *testing.T) {
	rt := newRuntime(t, 1)

	_, err := rt.ExecuteTransaction(tx.NewBuilder(staker).Gas(farm.InitialGasLimit).Build())
	assert.Error(t, err)

	_, err = rt.ExecuteTransaction(tx.NewBuilder(staker).Clause(farmClause(t, "withdraw")).Gas(farm.ClauseGas - 1).Build())
	assert.ErrorIs(t, err, runtime.ErrIntrinsicGas)

	unknown := tx.NewClause(farm.BytesToAddress([]byte("nobody"))).WithData([]byte{1, 2, 3, 4})
	receipt, err := rt.ExecuteTransaction(tx.NewBuilder(staker).Clause(unknown).Gas(farm.InitialGasLimit).Build())
	require.NoError(t, err)
	assert.True(t, receipt.Reverted)
	assert.Equal(t, runtime.ErrMethodNotFound.Error(), receipt.RevertReason)
}

func TestCall(t *testing.T) {
	rt := newRuntime(t, 1)
	before := rt.State().Stage().Hash()

	out, err := rt.Call(farmClause(t, "getUserInfo", staker), staker, farm.InitialGasLimit)
	require.NoError(t, err)
	require.NoError(t, out.VMErr)

	var info struct {
		StakingBalance *big.Int
		PendingRewards *big.Int
		HasStaked      bool
		IsStaking      bool
	}
	require.NoError(t, builtin.TokenFarm.MustMethod("getUserInfo").DecodeOutput(out.Data, &info))
	assert.Zero(t, info.StakingBalance.Sign())
	assert.False(t, info.HasStaked)

	out, err = rt.Call(farmClause(t, "deposit", big.NewInt(1)), staker, farm.InitialGasLimit)
	require.NoError(t, err)
	assert.ErrorIs(t, out.VMErr, xenv.ErrWriteProtection)

	assert.Equal(t, before, rt.State().Stage().Hash())
}

func TestSimulate(t *testing.T) {
	rt := newRuntime(t, 1)
	before := rt.State().Stage().Hash()

	out, err := rt.Simulate(farmClause(t, "deposit", big.NewInt(1)), staker, farm.InitialGasLimit)
	require.NoError(t, err)
	require.NoError(t, out.VMErr)
	assert.Len(t, out.Events, 2)

	out, err = rt.Simulate(farmClause(t, "setRewardsPerBlock", big.NewInt(1)), staker, farm.InitialGasLimit)
	require.NoError(t, err)
	assert.ErrorIs(t, out.VMErr, tokenfarm.ErrUnauthorized)

	assert.Zero(t, totalStaked(t, rt).Sign())
	assert.Equal(t, before, rt.State().Stage().Hash())
}

func TestFarmLifecycle(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	_, _, err = genesis.Setup(db, genesis.NewDevnet())
	require.NoError(t, err)
	st := state.NewStater(db).NewState()

	exec := func(block uint32, origin farm.Address, c *tx.Clause) *tx.Receipt {
		rt := runtime.New(st, &xenv.BlockContext{Number: block})
		receipt, err := rt.ExecuteTransaction(tx.NewBuilder(origin).Clause(c).Gas(farm.InitialGasLimit).Build())
		require.NoError(t, err)
		return receipt
	}

	r := exec(1, staker, farmClause(t, "deposit", big.NewInt(1000)))
	require.False(t, r.Reverted, r.RevertReason)

	r = exec(11, staker, farmClause(t, "claimRewards"))
	require.False(t, r.Reverted, r.RevertReason)

	// 10 blocks of the whole emission, 2% kept as fee
	paid, err := builtin.DAPPToken.WithState(st).BalanceOf(staker)
	require.NoError(t, err)
	assert.Zero(t, new(big.Int).Mul(big.NewInt(98), big.NewInt(1e17)).Cmp(paid))

	r = exec(12, staker, farmClause(t, "withdrawFees"))
	assert.True(t, r.Reverted)
	assert.Equal(t, "Ownable: caller is not the owner", r.RevertReason)

	r = exec(12, deployer, farmClause(t, "withdrawFees"))
	require.False(t, r.Reverted, r.RevertReason)
	fees, err := builtin.DAPPToken.WithState(st).BalanceOf(deployer)
	require.NoError(t, err)
	assert.Zero(t, big.NewInt(2e17).Cmp(fees))

	r = exec(13, staker, farmClause(t, "withdraw"))
	require.False(t, r.Reverted, r.RevertReason)
	lp, err := builtin.LPToken.WithState(st).BalanceOf(staker)
	require.NoError(t, err)
	assert.Zero(t, farm.InitialDeployerLP.Cmp(lp))

	r = exec(14, staker, farmClause(t, "withdraw"))
	assert.Equal(t, "Not a staker", r.RevertReason)
}
