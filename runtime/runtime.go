// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/builtin"
	"github.com/vechain/tokenfarm/builtin/reverts"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/log"
	"github.com/vechain/tokenfarm/state"
	Tx "github.com/vechain/tokenfarm/tx"
	"github.com/vechain/tokenfarm/xenv"
)

var (
	logger = log.WithContext("pkg", "runtime")

	// ErrMethodNotFound is returned when a clause calls no known builtin method.
	ErrMethodNotFound = errors.New("method not found")
	// ErrIntrinsicGas is returned when the gas provision does not cover the clauses.
	ErrIntrinsicGas = errors.New("intrinsic gas exceeds provided gas")
)

// Output is the result of executing a single clause.
type Output struct {
	Data        []byte
	Events      Tx.Events
	LeftOverGas uint64
	// business rule violation or gas exhaustion, all changes of the clause are discarded
	VMErr error
}

// Runtime is to support transaction execution.
// Executions are serialized, the state and the block context are shared.
type Runtime struct {
	mu       sync.Mutex
	state    *state.State
	blockCtx *xenv.BlockContext
}

// New create a Runtime object.
func New(state *state.State, blockCtx *xenv.BlockContext) *Runtime {
	return &Runtime{
		state:    state,
		blockCtx: blockCtx,
	}
}

func (rt *Runtime) State() *state.State               { return rt.state }
func (rt *Runtime) BlockContext() *xenv.BlockContext { return rt.blockCtx }

// execute runs the clause inside a checkpoint, reverted on any error.
// An error is returned only if the state is broken.
func (rt *Runtime) execute(clause *Tx.Clause, gas uint64, txCtx *xenv.TransactionContext, readonly bool) (*Output, error) {
	checkpoint := rt.state.NewCheckpoint()

	method, run, found := builtin.FindNativeCall(clause.To(), clause.Data())
	if !found {
		return &Output{LeftOverGas: gas, VMErr: ErrMethodNotFound}, nil
	}

	contract := xenv.NewContract(txCtx.Origin, clause.To(), clause.Data(), gas)
	env := xenv.New(method, rt.state, rt.blockCtx, txCtx, contract)
	data, err := env.Call(run, readonly)()

	output := &Output{LeftOverGas: contract.Gas}
	if err != nil {
		rt.state.RevertTo(checkpoint)

		var stateErr *state.Error
		if errors.As(err, &stateErr) {
			return nil, err
		}
		if errors.Is(err, xenv.ErrOutOfGas) {
			output.LeftOverGas = 0
		}
		output.VMErr = err
		return output, nil
	}
	output.Data = data
	output.Events = contract.Events()
	return output, nil
}

// ExecuteClause executes a single clause outside of any transaction, its changes are kept on success.
func (rt *Runtime) ExecuteClause(clause *Tx.Clause, gas uint64, txCtx *xenv.TransactionContext) (*Output, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	return rt.execute(clause, gas, txCtx, false)
}

// Call executes a single clause and discards its state changes.
func (rt *Runtime) Call(clause *Tx.Clause, caller farm.Address, gas uint64) (*Output, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	checkpoint := rt.state.NewCheckpoint()
	defer rt.state.RevertTo(checkpoint)

	return rt.execute(clause, gas, &xenv.TransactionContext{Origin: caller}, true)
}

// ExecuteTransaction executes all clauses of the transaction as one unit:
// if some clause fails, all clauses are reverted and receipt.Outputs is empty.
// An error is returned only for invalid transactions or broken state, in which case
// nothing was changed.
func (rt *Runtime) ExecuteTransaction(tx *Tx.Transaction) (receipt *Tx.Receipt, err error) {
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	intrinsicGas := farm.ClauseGas * uint64(len(tx.Clauses()))
	if tx.Gas() < intrinsicGas {
		return nil, ErrIntrinsicGas
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	// checkpoint to be reverted when clause failure.
	txCheckpoint := rt.state.NewCheckpoint()

	txCtx := &xenv.TransactionContext{ID: tx.ID(), Origin: tx.Origin()}
	leftOverGas := tx.Gas() - intrinsicGas
	receipt = &Tx.Receipt{
		TxID:        tx.ID(),
		Origin:      tx.Origin(),
		BlockNumber: rt.blockCtx.Number,
		Outputs:     make([]*Tx.Output, 0, len(tx.Clauses())),
	}

	for i, clause := range tx.Clauses() {
		output, err := rt.execute(clause, leftOverGas, txCtx, false)
		if err != nil {
			rt.state.RevertTo(txCheckpoint)
			return nil, err
		}
		leftOverGas = output.LeftOverGas

		if output.VMErr != nil {
			// revert all executed clauses
			rt.state.RevertTo(txCheckpoint)
			receipt.Reverted = true
			receipt.RevertReason = revertReason(output.VMErr)
			receipt.Outputs = []*Tx.Output{}
			logger.Debug("tx reverted", "id", tx.ID(), "clause", i, "reason", receipt.RevertReason)
			break
		}
		receipt.Outputs = append(receipt.Outputs, &Tx.Output{Events: output.Events, Data: output.Data})
	}
	receipt.GasUsed = tx.Gas() - leftOverGas

	metricTxCount().AddWithLabel(1, map[string]string{"reverted": boolLabel(receipt.Reverted)})
	metricTxGas().ObserveWithLabels(int64(receipt.GasUsed), nil)
	return receipt, nil
}

func revertReason(err error) string {
	if reason, ok := reverts.Reason(err); ok {
		return reason
	}
	return err.Error()
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// Simulate executes a single clause with writes allowed, then discards its state changes.
func (rt *Runtime) Simulate(clause *Tx.Clause, caller farm.Address, gas uint64) (*Output, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	checkpoint := rt.state.NewCheckpoint()
	defer rt.state.RevertTo(checkpoint)

	return rt.execute(clause, gas, &xenv.TransactionContext{Origin: caller}, false)
}
