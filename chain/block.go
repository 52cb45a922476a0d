// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/tokenfarm/farm"
)

type blockBody struct {
	ParentID  farm.Bytes32
	Number    uint32
	Timestamp uint64
	StateHash farm.Bytes32 // hash of the storage changes made in the block
	TxIDs     []farm.Bytes32
}

// Block is a unit of the block counter: the transactions executed at one block number.
type Block struct {
	body blockBody

	cache struct {
		id atomic.Value
	}
}

// NewBlock creates a block on top of parent. A nil parent makes a genesis block.
func NewBlock(parent *Block, timestamp uint64, stateHash farm.Bytes32, txIDs []farm.Bytes32) *Block {
	body := blockBody{
		// so genesis number is 0
		ParentID:  farm.Bytes32{0xff, 0xff, 0xff, 0xff},
		Timestamp: timestamp,
		StateHash: stateHash,
		TxIDs:     append([]farm.Bytes32(nil), txIDs...),
	}
	if parent != nil {
		body.ParentID = parent.ID()
		body.Number = parent.Number() + 1
	}
	return &Block{body: body}
}

func (b *Block) ParentID() farm.Bytes32  { return b.body.ParentID }
func (b *Block) Number() uint32          { return b.body.Number }
func (b *Block) Timestamp() uint64       { return b.body.Timestamp }
func (b *Block) StateHash() farm.Bytes32 { return b.body.StateHash }

// TxIDs returns ids of txs in the block, in execution order.
func (b *Block) TxIDs() []farm.Bytes32 {
	return append([]farm.Bytes32(nil), b.body.TxIDs...)
}

// ID computes the id of the block. The first 4 bytes are the block number.
func (b *Block) ID() (id farm.Bytes32) {
	if cached := b.cache.id.Load(); cached != nil {
		return cached.(farm.Bytes32)
	}
	defer func() { b.cache.id.Store(id) }()

	data, err := rlp.EncodeToBytes(&b.body)
	if err != nil {
		panic(err)
	}
	id = farm.Blake2b(data)
	binary.BigEndian.PutUint32(id[:], b.body.Number)
	return
}

// Number extracts block number from block id.
func Number(blockID farm.Bytes32) uint32 {
	// first 4 bytes are over written by block number (big endian).
	return binary.BigEndian.Uint32(blockID[:])
}

// EncodeRLP implements rlp.Encoder
func (b *Block) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &b.body)
}

// DecodeRLP implements rlp.Decoder.
func (b *Block) DecodeRLP(s *rlp.Stream) error {
	var body blockBody
	if err := s.Decode(&body); err != nil {
		return err
	}
	*b = Block{body: body}
	return nil
}

func (b *Block) String() string {
	return fmt.Sprintf(`Block(%v)
	Number:		%v
	ParentID:	%v
	Timestamp:	%v
	StateHash:	%v
	Txs:		%v`, b.ID(), b.body.Number, b.body.ParentID, b.body.Timestamp, b.body.StateHash, len(b.body.TxIDs))
}
