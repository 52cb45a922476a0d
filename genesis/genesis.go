// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/abi"
	"github.com/vechain/tokenfarm/chain"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/kv"
	"github.com/vechain/tokenfarm/log"
	"github.com/vechain/tokenfarm/lvldb"
	"github.com/vechain/tokenfarm/state"
	"github.com/vechain/tokenfarm/tx"
)

var logger = log.WithContext("pkg", "genesis")

// Genesis to build genesis block.
type Genesis struct {
	builder *Builder
	id      farm.Bytes32
	name    string
}

// Build build the genesis block.
func (g *Genesis) Build(stater *state.Stater) (blk *chain.Block, events tx.Events, stage *state.Stage, err error) {
	blk, events, stage, err = g.builder.Build(stater)
	if err != nil {
		return nil, nil, nil, err
	}
	if blk.ID() != g.id {
		panic("built genesis ID incorrect")
	}
	return blk, events, stage, nil
}

// ID returns genesis block ID.
func (g *Genesis) ID() farm.Bytes32 {
	return g.id
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}

func computeID(builder *Builder) (farm.Bytes32, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return farm.Bytes32{}, err
	}
	defer db.Close()

	blk, _, _, err := builder.Build(state.NewStater(db))
	if err != nil {
		return farm.Bytes32{}, err
	}
	return blk.ID(), nil
}

// Setup opens the chain stored in db, deploying the genesis first if db is empty.
// The genesis is always built on a scratch store, so its events are returned either way.
func Setup(db kv.Store, gene *Genesis) (*chain.Repository, tx.Events, error) {
	scratch, err := lvldb.NewMem()
	if err != nil {
		return nil, nil, err
	}
	defer scratch.Close()

	blk, events, stage, err := gene.Build(state.NewStater(scratch))
	if err != nil {
		return nil, nil, errors.Wrap(err, "build genesis")
	}

	initialized, err := chain.HasGenesis(db)
	if err != nil {
		return nil, nil, err
	}
	if !initialized {
		if err := stage.Commit(db); err != nil {
			return nil, nil, errors.Wrap(err, "commit genesis state")
		}
		logger.Info("genesis deployed", "name", gene.Name(), "id", blk.ID(), "slots", stage.Len())
	}

	repo, err := chain.NewRepository(db, blk)
	if err != nil {
		return nil, nil, err
	}
	return repo, events, nil
}

func mustClause(to farm.Address, contractABI *abi.ABI, method string, args ...any) *tx.Clause {
	m, ok := contractABI.MethodByName(method)
	if !ok {
		panic("method not found: " + method)
	}
	data, err := m.EncodeInput(args...)
	if err != nil {
		panic(errors.Wrapf(err, "encode %s", method))
	}
	return tx.NewClause(to).WithData(data)
}
