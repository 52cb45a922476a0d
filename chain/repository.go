// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"encoding/binary"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/kv"
	"github.com/vechain/tokenfarm/log"
	"github.com/vechain/tokenfarm/tx"
)

const (
	blockStoreName   = "chain.blk"   // for blocks
	receiptStoreName = "chain.rcpt"  // for receipts of each block
	propStoreName    = "chain.props" // for property-named blocks such as best block
	txIndexStoreName = "chain.txi"   // for tx locations
)

var (
	logger = log.WithContext("pkg", "chain")

	errNotFound    = errors.New("not found")
	bestBlockKey   = []byte("best-block-num")
	errNotChildOf  = errors.New("block is not a child of the best block")
	errTimeReverse = errors.New("block timestamp is before its parent")
)

// TxLocation locates a tx in the chain.
type TxLocation struct {
	BlockNumber uint32
	Index       uint64
}

// Repository stores blocks, receipts and the best block: the monotonically
// non-decreasing block counter of the farm.
//
// It's thread-safe.
type Repository struct {
	db           kv.Store
	blockStore   kv.Store
	receiptStore kv.Store
	propStore    kv.Store
	txIndexer    kv.Store

	genesis   *Block
	bestBlock atomic.Value
	writeLock sync.Mutex
	tick      signal
}

// NewRepository create an instance of repository. The genesis block is saved
// on first use and must match on later ones.
func NewRepository(db kv.Store, genesis *Block) (*Repository, error) {
	if genesis.Number() != 0 {
		return nil, errors.New("genesis number != 0")
	}

	repo := &Repository{
		db:           db,
		blockStore:   kv.Bucket(blockStoreName).NewStore(db),
		receiptStore: kv.Bucket(receiptStoreName).NewStore(db),
		propStore:    kv.Bucket(propStoreName).NewStore(db),
		txIndexer:    kv.Bucket(txIndexStoreName).NewStore(db),
		genesis:      genesis,
	}

	if val, err := repo.propStore.Get(bestBlockKey); err != nil {
		if !repo.propStore.IsNotFound(err) {
			return nil, err
		}
		if err := repo.saveBlock(genesis, nil); err != nil {
			return nil, err
		}
		repo.bestBlock.Store(genesis)
	} else {
		existGenesis, err := repo.GetBlock(0)
		if err != nil {
			return nil, errors.Wrap(err, "get existing genesis")
		}
		if existGenesis.ID() != genesis.ID() {
			return nil, errors.New("genesis mismatch")
		}
		best, err := repo.GetBlock(binary.BigEndian.Uint32(val))
		if err != nil {
			return nil, errors.Wrap(err, "get best block")
		}
		repo.bestBlock.Store(best)
	}
	metricBestBlock().Set(int64(repo.BestBlock().Number()))
	return repo, nil
}

// HasGenesis returns whether a chain is already stored in db.
func HasGenesis(db kv.Store) (bool, error) {
	return kv.Bucket(propStoreName).NewStore(db).Has(bestBlockKey)
}

// GenesisBlock returns genesis block.
func (r *Repository) GenesisBlock() *Block {
	return r.genesis
}

// BestBlock returns the latest block on chain.
func (r *Repository) BestBlock() *Block {
	return r.bestBlock.Load().(*Block)
}

// AddBlock appends a block and its receipts, and makes it the best block.
// The block must be a child of the best block.
func (r *Repository) AddBlock(b *Block, receipts tx.Receipts) error {
	r.writeLock.Lock()
	defer r.writeLock.Unlock()

	best := r.BestBlock()
	if b.ParentID() != best.ID() {
		return errNotChildOf
	}
	if b.Timestamp() < best.Timestamp() {
		return errTimeReverse
	}
	if len(receipts) != len(b.TxIDs()) {
		return errors.New("receipts count mismatch")
	}
	if err := r.saveBlock(b, receipts); err != nil {
		return err
	}
	r.bestBlock.Store(b)
	metricBestBlock().Set(int64(b.Number()))
	logger.Debug("block added", "number", b.Number(), "id", b.ID(), "txs", len(receipts))

	r.tick.Broadcast()
	return nil
}

func (r *Repository) saveBlock(b *Block, receipts tx.Receipts) error {
	var (
		bulk      = r.db.Bulk()
		blocks    = kv.Bucket(blockStoreName).NewPutter(bulk)
		receiptsP = kv.Bucket(receiptStoreName).NewPutter(bulk)
		props     = kv.Bucket(propStoreName).NewPutter(bulk)
		txIndexer = kv.Bucket(txIndexStoreName).NewPutter(bulk)
		key       = numberKey(b.Number())
	)

	data, err := rlp.EncodeToBytes(b)
	if err != nil {
		return err
	}
	if err := blocks.Put(key, data); err != nil {
		return err
	}

	if data, err = tx.EncodeReceipts(receipts); err != nil {
		return err
	}
	if err := receiptsP.Put(key, data); err != nil {
		return err
	}

	for i, id := range b.TxIDs() {
		loc, err := rlp.EncodeToBytes(&TxLocation{b.Number(), uint64(i)})
		if err != nil {
			return err
		}
		if err := txIndexer.Put(id[:], loc); err != nil {
			return err
		}
	}
	if err := props.Put(bestBlockKey, key); err != nil {
		return err
	}
	return errors.Wrap(bulk.Write(), "write block")
}

// GetBlock returns the block at the given number.
func (r *Repository) GetBlock(num uint32) (*Block, error) {
	data, err := r.blockStore.Get(numberKey(num))
	if err != nil {
		if r.blockStore.IsNotFound(err) {
			return nil, errNotFound
		}
		return nil, err
	}
	var b Block
	if err := rlp.DecodeBytes(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBlockReceipts returns the receipts of txs in the block.
func (r *Repository) GetBlockReceipts(num uint32) (tx.Receipts, error) {
	data, err := r.receiptStore.Get(numberKey(num))
	if err != nil {
		if r.receiptStore.IsNotFound(err) {
			return nil, errNotFound
		}
		return nil, err
	}
	return tx.DecodeReceipts(data)
}

// GetTxLocation returns where the tx was executed.
func (r *Repository) GetTxLocation(id farm.Bytes32) (*TxLocation, error) {
	data, err := r.txIndexer.Get(id[:])
	if err != nil {
		if r.txIndexer.IsNotFound(err) {
			return nil, errNotFound
		}
		return nil, err
	}
	var loc TxLocation
	if err := rlp.DecodeBytes(data, &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

// GetReceipt returns the receipt of the tx.
func (r *Repository) GetReceipt(id farm.Bytes32) (*tx.Receipt, error) {
	loc, err := r.GetTxLocation(id)
	if err != nil {
		return nil, err
	}
	receipts, err := r.GetBlockReceipts(loc.BlockNumber)
	if err != nil {
		return nil, err
	}
	if loc.Index >= uint64(len(receipts)) {
		return nil, errors.New("receipt index out of range")
	}
	return receipts[loc.Index], nil
}

// NewTicker create a signal Waiter to receive event that the best block changed.
func (r *Repository) NewTicker() Waiter {
	return r.tick.NewWaiter()
}

// IsNotFound returns if the error means not found.
func (r *Repository) IsNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}

func numberKey(num uint32) []byte {
	var key [4]byte
	binary.BigEndian.PutUint32(key[:], num)
	return key[:]
}
