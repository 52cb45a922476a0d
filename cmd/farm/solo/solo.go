// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solo

import (
	"context"
	"math"
	"math/big"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/builtin"
	"github.com/vechain/tokenfarm/chain"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/log"
	"github.com/vechain/tokenfarm/logdb"
	"github.com/vechain/tokenfarm/packer"
	"github.com/vechain/tokenfarm/runtime"
	"github.com/vechain/tokenfarm/state"
	"github.com/vechain/tokenfarm/tx"
)

var (
	logger = log.WithContext("pkg", "solo")
	unit   = new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(builtin.TokenDecimals)), nil)
)

type Options struct {
	BlockInterval uint64
	SkipLogs      bool
	OnDemand      bool // pack a block right after each adopted tx
}

// Solo mode is the standalone farm node, it packs one block per interval.
// Transactions are executed at once in the block being packed.
type Solo struct {
	repo    *chain.Repository
	packer  *packer.Packer
	logDB   *logdb.LogDB
	options Options

	mu   sync.Mutex
	flow *packer.Flow
}

// New returns Solo instance, packing the block following the best one.
func New(repo *chain.Repository, packer *packer.Packer, logDB *logdb.LogDB, options Options) *Solo {
	if options.BlockInterval == 0 {
		options.BlockInterval = farm.BlockInterval
	}
	return &Solo{
		repo:    repo,
		packer:  packer,
		logDB:   logDB,
		options: options,
		flow:    packer.Mock(repo.BestBlock(), uint64(time.Now().Unix())),
	}
}

// Run packs blocks until ctx is done.
func (s *Solo) Run(ctx context.Context) error {
	if s.options.OnDemand {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(time.Duration(s.options.BlockInterval) * time.Second)
	defer ticker.Stop()

	logger.Info("prepared to pack block", "next", s.PendingNumber())
	for {
		select {
		case <-ctx.Done():
			logger.Info("stopping interval packing service......")
			return nil
		case now := <-ticker.C:
			if _, err := s.Pack(uint64(now.Unix()) + s.options.BlockInterval); err != nil {
				logger.Error("failed to pack block", "err", err)
			}
		}
	}
}

// PendingNumber returns the number of the block being packed.
func (s *Solo) PendingNumber() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.flow.Number()
}

// Pack commits the pending block and starts the next one, timestamped with next.
func (s *Solo) Pack(next uint64) (*chain.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pack(next)
}

func (s *Solo) pack(next uint64) (*chain.Block, error) {
	b, stage, receipts := s.flow.Pack()
	if err := s.packer.Commit(b, stage, receipts); err != nil {
		return nil, errors.Wrap(err, "commit block")
	}
	s.flow = s.packer.Mock(b, next)

	if !s.options.SkipLogs {
		w := s.logDB.NewWriter()
		if err := w.Write(b, receipts); err != nil {
			return nil, errors.Wrap(err, "write logs")
		}
		if err := w.Commit(); err != nil {
			return nil, errors.Wrap(err, "commit logs")
		}
	}
	s.updateGauges()

	logger.Info("📦 new block packed",
		"number", b.Number(),
		"id", b.ID(),
		"txs", len(receipts),
		"gasUsed", gasUsed(receipts),
	)
	return b, nil
}

// Execute adopts the transaction into the pending block.
// If the block is full, it is packed first.
func (s *Solo) Execute(trx *tx.Transaction) (*tx.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	receipt, err := s.flow.Adopt(trx)
	if packer.IsGasLimitReached(err) {
		if _, err := s.pack(s.flow.When() + s.options.BlockInterval); err != nil {
			return nil, err
		}
		receipt, err = s.flow.Adopt(trx)
	}
	if err != nil {
		return nil, err
	}

	if s.options.OnDemand {
		if _, err := s.pack(s.flow.When() + 1); err != nil {
			return nil, err
		}
	}
	return receipt, nil
}

// Call simulates the clause on the pending state, changes are discarded.
func (s *Solo) Call(clause *tx.Clause, caller farm.Address, gas uint64) (*runtime.Output, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.flow.Runtime().Simulate(clause, caller, gas)
}

// View runs fn against the pending state.
func (s *Solo) View(fn func(st *state.State, blockNum uint32) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.flow.Runtime().State(), s.flow.Number())
}

func (s *Solo) updateGauges() {
	f := builtin.TokenFarm.WithState(s.flow.Runtime().State())
	if tvl, err := f.GetTotalValueLocked(); err == nil {
		metricTotalStaked().Set(gaugeValue(new(big.Int).Div(tvl, unit)))
	}
	if count, err := f.GetStakersCount(); err == nil {
		metricStakersCount().Set(gaugeValue(new(big.Int).SetUint64(count)))
	}
}

// gaugeValue saturates v to the int64 range of a gauge.
func gaugeValue(v *big.Int) int64 {
	if v.IsInt64() {
		return v.Int64()
	}
	if v.Sign() < 0 {
		return math.MinInt64
	}
	return math.MaxInt64
}

func gasUsed(receipts tx.Receipts) (used uint64) {
	for _, r := range receipts {
		used += r.GasUsed
	}
	return
}
