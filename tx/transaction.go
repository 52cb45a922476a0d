// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/farm"
)

var (
	errEmptyTx     = errors.New("tx: no clauses")
	errZeroGas     = errors.New("tx: zero gas")
	errZeroOrigin  = errors.New("tx: zero origin")
	errTooManyArgs = errors.New("tx: too many clauses")
)

// MaxClauses is the maximum count of clauses in one transaction.
const MaxClauses = 64

type body struct {
	Origin  farm.Address
	Clauses []*Clause
	Gas     uint64
	Nonce   uint64
}

// Transaction is an ordered batch of clauses sent by one origin, executed atomically.
// The node runs in developer mode, so the origin is declared rather than recovered from a signature.
type Transaction struct {
	body body

	cache struct {
		id atomic.Value
	}
}

// Origin returns the caller of every clause.
func (t *Transaction) Origin() farm.Address {
	return t.body.Origin
}

// Gas returns gas provision for this tx.
func (t *Transaction) Gas() uint64 {
	return t.body.Gas
}

func (t *Transaction) Nonce() uint64 {
	return t.body.Nonce
}

// Clauses returns clauses in tx.
func (t *Transaction) Clauses() []*Clause {
	return append([]*Clause(nil), t.body.Clauses...)
}

// ID returns the transaction id, blake2b of its rlp encoding.
func (t *Transaction) ID() (id farm.Bytes32) {
	if cached := t.cache.id.Load(); cached != nil {
		return cached.(farm.Bytes32)
	}
	defer func() { t.cache.id.Store(id) }()

	data, err := rlp.EncodeToBytes(&t.body)
	if err != nil {
		panic(err)
	}
	return farm.Blake2b(data)
}

// Validate checks the transaction is well formed.
func (t *Transaction) Validate() error {
	if len(t.body.Clauses) == 0 {
		return errEmptyTx
	}
	if len(t.body.Clauses) > MaxClauses {
		return errTooManyArgs
	}
	if t.body.Gas == 0 {
		return errZeroGas
	}
	if t.body.Origin.IsZero() {
		return errZeroOrigin
	}
	return nil
}

// EncodeRLP implements rlp.Encoder
func (t *Transaction) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &t.body)
}

// DecodeRLP implements rlp.Decoder
func (t *Transaction) DecodeRLP(s *rlp.Stream) error {
	var body body
	if err := s.Decode(&body); err != nil {
		return err
	}
	*t = Transaction{body: body}
	return nil
}

func (t *Transaction) String() string {
	return fmt.Sprintf(`
	Tx(%v)
	Origin:		%v
	Clauses:	%v
	Gas:		%v
	Nonce:		%v`, t.ID(), t.body.Origin, t.body.Clauses, t.body.Gas, t.body.Nonce)
}
