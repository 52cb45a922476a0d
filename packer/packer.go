// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package packer

import (
	"github.com/vechain/tokenfarm/chain"
	"github.com/vechain/tokenfarm/log"
	"github.com/vechain/tokenfarm/runtime"
	"github.com/vechain/tokenfarm/state"
	"github.com/vechain/tokenfarm/tx"
	"github.com/vechain/tokenfarm/xenv"
)

var logger = log.WithContext("pkg", "packer")

// Packer to pack txs and build new blocks.
type Packer struct {
	repo     *chain.Repository
	stater   *state.Stater
	gasLimit uint64
}

// New create a new Packer instance.
// A zero gasLimit means no block gas limit.
func New(repo *chain.Repository, stater *state.Stater, gasLimit uint64) *Packer {
	return &Packer{
		repo,
		stater,
		gasLimit,
	}
}

// Mock create a packing flow upon the given parent, executing in the block that follows it.
func (p *Packer) Mock(parent *chain.Block, timestamp uint64) *Flow {
	if timestamp < parent.Timestamp() {
		timestamp = parent.Timestamp()
	}
	rt := runtime.New(
		p.stater.NewState(),
		&xenv.BlockContext{
			Number: parent.Number() + 1,
			Time:   timestamp,
		})
	return newFlow(p, parent, rt)
}

// Commit persists the state changes and the block, making it the best block.
func (p *Packer) Commit(b *chain.Block, stage *state.Stage, receipts tx.Receipts) error {
	if err := stage.Commit(p.stater.Store()); err != nil {
		return err
	}
	if err := p.repo.AddBlock(b, receipts); err != nil {
		return err
	}
	metricBlocksPacked().Add(1)
	logger.Debug("block committed", "number", b.Number(), "txs", len(receipts), "changes", stage.Len())
	return nil
}
