// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokenfarm/farm"
)

var (
	origin = farm.BytesToAddress([]byte("origin"))
	target = farm.BytesToAddress([]byte("TokenFarm"))
)

func TestTransaction(t *testing.T) {
	trx := NewBuilder(origin).
		Clause(NewClause(target).WithData([]byte{1, 2, 3, 4})).
		Gas(21000).
		Nonce(7).
		Build()

	assert.Equal(t, origin, trx.Origin())
	assert.Equal(t, uint64(21000), trx.Gas())
	assert.Equal(t, uint64(7), trx.Nonce())
	assert.Len(t, trx.Clauses(), 1)
	assert.Equal(t, target, trx.Clauses()[0].To())
	assert.NoError(t, trx.Validate())

	data, err := rlp.EncodeToBytes(trx)
	require.NoError(t, err)

	var decoded Transaction
	require.NoError(t, rlp.DecodeBytes(data, &decoded))
	assert.Equal(t, trx.ID(), decoded.ID())
	assert.Equal(t, []byte{1, 2, 3, 4}, decoded.Clauses()[0].Data())

	other := NewBuilder(origin).Clause(NewClause(target)).Gas(21000).Nonce(8).Build()
	assert.NotEqual(t, trx.ID(), other.ID())
}

func TestValidate(t *testing.T) {
	clause := NewClause(target)

	tests := []struct {
		name string
		tx   *Transaction
		err  error
	}{
		{"no clauses", NewBuilder(origin).Gas(1).Build(), errEmptyTx},
		{"zero gas", NewBuilder(origin).Clause(clause).Build(), errZeroGas},
		{"zero origin", NewBuilder(farm.Address{}).Clause(clause).Gas(1).Build(), errZeroOrigin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.err, tt.tx.Validate())
		})
	}

	b := NewBuilder(origin).Gas(1)
	for range MaxClauses + 1 {
		b.Clause(clause)
	}
	assert.Equal(t, errTooManyArgs, b.Build().Validate())
}

func TestClauseDataIsCopied(t *testing.T) {
	data := []byte{1}
	c := NewClause(target).WithData(data)
	data[0] = 2
	assert.Equal(t, []byte{1}, c.Data())
}

func TestReceipts(t *testing.T) {
	receipts := Receipts{
		{
			TxID:        farm.Bytes32{1},
			Origin:      origin,
			BlockNumber: 3,
			GasUsed:     100,
			Outputs: []*Output{{
				Events: Events{{Address: target, Topics: []farm.Bytes32{{2}}, Data: []byte{3}}},
				Data:   []byte{4},
			}},
		},
		{TxID: farm.Bytes32{2}, Reverted: true, RevertReason: "Not a staker", Outputs: []*Output{}},
	}
	data, err := EncodeReceipts(receipts)
	require.NoError(t, err)

	decoded, err := DecodeReceipts(data)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.Equal(t, receipts[0], decoded[0])
	assert.Equal(t, "Not a staker", decoded[1].RevertReason)
	assert.True(t, decoded[1].Reverted)
}
