// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package packer

import (
	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/chain"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/runtime"
	"github.com/vechain/tokenfarm/state"
	"github.com/vechain/tokenfarm/tx"
)

// Flow the flow of packing a new block.
type Flow struct {
	packer       *Packer
	parent       *chain.Block
	runtime      *runtime.Runtime
	processedTxs map[farm.Bytes32]bool // txID -> reverted
	gasUsed      uint64
	txIDs        []farm.Bytes32
	receipts     tx.Receipts
}

func newFlow(packer *Packer, parent *chain.Block, runtime *runtime.Runtime) *Flow {
	return &Flow{
		packer:       packer,
		parent:       parent,
		runtime:      runtime,
		processedTxs: make(map[farm.Bytes32]bool),
	}
}

// Parent returns the parent block.
func (f *Flow) Parent() *chain.Block {
	return f.parent
}

// Number returns the number of the block being packed.
func (f *Flow) Number() uint32 {
	return f.runtime.BlockContext().Number
}

// When the target time to do packing.
func (f *Flow) When() uint64 {
	return f.runtime.BlockContext().Time
}

// Runtime returns the runtime executing on the pending state.
func (f *Flow) Runtime() *runtime.Runtime {
	return f.runtime
}

// GasUsed returns the gas used by adopted txs.
func (f *Flow) GasUsed() uint64 {
	return f.gasUsed
}

// Receipts returns the receipts of adopted txs.
func (f *Flow) Receipts() tx.Receipts {
	return f.receipts
}

func (f *Flow) findTx(txID farm.Bytes32) (bool, error) {
	if _, ok := f.processedTxs[txID]; ok {
		return true, nil
	}
	if _, err := f.packer.repo.GetTxLocation(txID); err != nil {
		if f.packer.repo.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Adopt try to execute the given transaction.
// If the tx is valid and can be executed on current state (regardless of revert),
// it will be adopted by the new block.
func (f *Flow) Adopt(trx *tx.Transaction) (*tx.Receipt, error) {
	if err := trx.Validate(); err != nil {
		return nil, badTxError{err.Error()}
	}
	if limit := f.packer.gasLimit; limit > 0 && f.gasUsed+trx.Gas() > limit {
		return nil, errGasLimitReached
	}

	if found, err := f.findTx(trx.ID()); err != nil {
		return nil, err
	} else if found {
		return nil, errKnownTx
	}

	receipt, err := f.runtime.ExecuteTransaction(trx)
	if err != nil {
		var stateErr *state.Error
		if errors.As(err, &stateErr) {
			return nil, err
		}
		return nil, badTxError{err.Error()}
	}
	f.processedTxs[trx.ID()] = receipt.Reverted
	f.gasUsed += receipt.GasUsed
	f.receipts = append(f.receipts, receipt)
	f.txIDs = append(f.txIDs, trx.ID())
	metricTxAdopted().AddWithLabel(1, map[string]string{"reverted": boolLabel(receipt.Reverted)})
	return receipt, nil
}

// Pack build the new block with all adopted txs.
func (f *Flow) Pack() (*chain.Block, *state.Stage, tx.Receipts) {
	stage := f.runtime.State().Stage()
	b := chain.NewBlock(f.parent, f.When(), stage.Hash(), f.txIDs)
	return b, stage, f.receipts
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
