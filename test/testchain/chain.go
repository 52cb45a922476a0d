// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package testchain

import (
	"fmt"

	"github.com/vechain/tokenfarm/chain"
	"github.com/vechain/tokenfarm/cmd/farm/solo"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/genesis"
	"github.com/vechain/tokenfarm/logdb"
	"github.com/vechain/tokenfarm/lvldb"
	"github.com/vechain/tokenfarm/packer"
	"github.com/vechain/tokenfarm/state"
	"github.com/vechain/tokenfarm/test/datagen"
	"github.com/vechain/tokenfarm/tx"
)

// Chain is an in-memory farm node: a devnet genesis, the block repository,
// the event log and a solo packer executing transactions in the pending block.
type Chain struct {
	db      *lvldb.LevelDB
	genesis *genesis.Genesis
	repo    *chain.Repository
	stater  *state.Stater
	logDB   *logdb.LogDB
	solo    *solo.Solo
}

// NewDefault creates a chain deployed with the devnet genesis.
func NewDefault() (*Chain, error) {
	return New(genesis.NewDevnet())
}

// New creates a chain deployed with the given genesis.
func New(gene *genesis.Genesis) (*Chain, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	repo, events, err := genesis.Setup(db, gene)
	if err != nil {
		return nil, err
	}
	logDB, err := logdb.NewMem()
	if err != nil {
		return nil, err
	}
	// genesis deployment events
	w := logDB.NewWriter()
	if err := w.Write(repo.GenesisBlock(), tx.Receipts{{Outputs: []*tx.Output{{Events: events}}}}); err != nil {
		return nil, err
	}
	if err := w.Commit(); err != nil {
		return nil, err
	}

	stater := state.NewStater(db)
	return &Chain{
		db:      db,
		genesis: gene,
		repo:    repo,
		stater:  stater,
		logDB:   logDB,
		solo:    solo.New(repo, packer.New(repo, stater, 0), logDB, solo.Options{}),
	}, nil
}

func (c *Chain) Genesis() *genesis.Genesis  { return c.genesis }
func (c *Chain) Repo() *chain.Repository    { return c.repo }
func (c *Chain) Stater() *state.Stater      { return c.stater }
func (c *Chain) LogDB() *logdb.LogDB        { return c.logDB }
func (c *Chain) Solo() *solo.Solo           { return c.solo }
func (c *Chain) GenesisBlock() *chain.Block { return c.repo.GenesisBlock() }
func (c *Chain) BestBlock() *chain.Block    { return c.repo.BestBlock() }
func (c *Chain) State() *state.State        { return c.stater.NewState() }

// Close releases the databases.
func (c *Chain) Close() {
	c.logDB.Close()
	c.db.Close()
}

// Transaction builds a transaction of the clauses sent by origin.
func (c *Chain) Transaction(origin farm.Address, clauses ...*tx.Clause) *tx.Transaction {
	builder := tx.NewBuilder(origin).
		Gas(farm.InitialGasLimit).
		Nonce(datagen.RandUint64())
	for _, clause := range clauses {
		builder.Clause(clause)
	}
	return builder.Build()
}

// MintClauses executes a transaction of the clauses and packs the block containing it.
func (c *Chain) MintClauses(origin farm.Address, clauses ...*tx.Clause) (*tx.Receipt, error) {
	receipt, err := c.solo.Execute(c.Transaction(origin, clauses...))
	if err != nil {
		return nil, fmt.Errorf("unable to execute tx: %w", err)
	}
	if err := c.MintBlock(); err != nil {
		return nil, err
	}
	return receipt, nil
}

// MintBlock packs the pending block.
func (c *Chain) MintBlock() error {
	best := c.repo.BestBlock()
	if _, err := c.solo.Pack(best.Timestamp() + 2*farm.BlockInterval); err != nil {
		return fmt.Errorf("unable to pack block: %w", err)
	}
	return nil
}

// MintBlocks packs n empty blocks.
func (c *Chain) MintBlocks(n int) error {
	for range n {
		if err := c.MintBlock(); err != nil {
			return err
		}
	}
	return nil
}
