// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math"

	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/chain"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/runtime"
	"github.com/vechain/tokenfarm/state"
	"github.com/vechain/tokenfarm/tx"
	"github.com/vechain/tokenfarm/xenv"
)

// Builder helper to build genesis block.
type Builder struct {
	timestamp uint64

	stateProcs []func(state *state.State) error
	calls      []call
}

type call struct {
	clause *tx.Clause
	caller farm.Address
}

// Timestamp set timestamp.
func (b *Builder) Timestamp(t uint64) *Builder {
	b.timestamp = t
	return b
}

// State add a state process
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Call add a contract call, executed after all state processes.
func (b *Builder) Call(clause *tx.Clause, caller farm.Address) *Builder {
	b.calls = append(b.calls, call{clause, caller})
	return b
}

// Build build genesis block according to presets.
// The returned stage holds the genesis state and is not committed.
func (b *Builder) Build(stater *state.Stater) (blk *chain.Block, events tx.Events, stage *state.Stage, err error) {
	state := stater.NewState()

	for _, proc := range b.stateProcs {
		if err := proc(state); err != nil {
			return nil, nil, nil, errors.Wrap(err, "state process")
		}
	}

	rt := runtime.New(state, &xenv.BlockContext{
		Number: 0,
		Time:   b.timestamp,
	})

	for _, call := range b.calls {
		out, err := rt.ExecuteClause(call.clause, math.MaxUint64, &xenv.TransactionContext{
			Origin: call.caller,
		})
		if err != nil {
			return nil, nil, nil, errors.Wrap(err, "execute")
		}
		if out.VMErr != nil {
			return nil, nil, nil, errors.Wrap(out.VMErr, "vm")
		}
		events = append(events, out.Events...)
	}

	stage = state.Stage()
	return chain.NewBlock(nil, b.timestamp, stage.Hash(), nil), events, stage, nil
}
