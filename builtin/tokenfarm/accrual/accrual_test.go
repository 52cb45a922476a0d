// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accrual

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func e18(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

func TestAccrue(t *testing.T) {
	maxUint256 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	tests := []struct {
		name       string
		balance    *big.Int
		rate       *big.Int
		checkpoint uint32
		block      uint32
		total      *big.Int
		want       *big.Int
		wantErr    error
	}{
		{"single staker, 10 blocks", big.NewInt(100), e18(1), 10, 20, big.NewInt(100), e18(10), nil},
		{"repriced against current pool", big.NewInt(100), e18(1), 10, 20, big.NewInt(400), big.NewInt(2.5e18), nil},
		{"same block", big.NewInt(100), e18(1), 20, 20, big.NewInt(100), big.NewInt(0), nil},
		{"zero balance", big.NewInt(0), e18(1), 0, 20, big.NewInt(100), big.NewInt(0), nil},
		{"nil balance", nil, e18(1), 0, 20, big.NewInt(100), big.NewInt(0), nil},
		{"zero total", big.NewInt(100), e18(1), 0, 20, big.NewInt(0), big.NewInt(0), nil},
		{"zero rate", big.NewInt(100), big.NewInt(0), 0, 20, big.NewInt(100), big.NewInt(0), nil},
		{"truncated", big.NewInt(1), big.NewInt(10), 0, 1, big.NewInt(3), big.NewInt(3), nil},
		{"product overflow", maxUint256, big.NewInt(2), 0, 1, big.NewInt(1), nil, ErrOverflow},
		{"elapsed overflow", maxUint256, big.NewInt(1), 0, 2, big.NewInt(1), nil, ErrOverflow},
		{"balance beyond 256 bits", new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1), 0, 1, big.NewInt(1), nil, ErrOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Accrue(tt.balance, tt.rate, tt.checkpoint, tt.block, tt.total)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Zerof(t, tt.want.Cmp(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestAccrueFutureCheckpoint(t *testing.T) {
	_, err := Accrue(big.NewInt(1), big.NewInt(1), 11, 10, big.NewInt(1))
	var future *FutureCheckpointError
	require.ErrorAs(t, err, &future)
	assert.Equal(t, uint32(11), future.Checkpoint)
	assert.Equal(t, uint32(10), future.Block)
}

// Splitting an interval at a block where the pool is unchanged loses at most one unit per split.
func TestAccrueSplitTruncation(t *testing.T) {
	balance, rate, total := big.NewInt(7), big.NewInt(1000), big.NewInt(9)

	whole, err := Accrue(balance, rate, 0, 10, total)
	require.NoError(t, err)

	first, err := Accrue(balance, rate, 0, 3, total)
	require.NoError(t, err)
	second, err := Accrue(balance, rate, 3, 10, total)
	require.NoError(t, err)
	split := new(big.Int).Add(first, second)

	assert.True(t, split.Cmp(whole) <= 0)
	assert.True(t, new(big.Int).Sub(whole, split).Cmp(big.NewInt(1)) <= 0)
}

func TestFee(t *testing.T) {
	tests := []struct {
		amount int64
		bp     uint64
		fee    int64
		net    int64
	}{
		{1000, 200, 20, 980},
		{1000, 0, 0, 1000},
		{1000, 1000, 100, 900},
		{49, 200, 0, 49},
		{51, 200, 1, 50},
	}
	for _, tt := range tests {
		fee, net, err := Fee(big.NewInt(tt.amount), tt.bp, 10000)
		require.NoError(t, err)
		assert.Zero(t, big.NewInt(tt.fee).Cmp(fee), "fee of %d at %d bp", tt.amount, tt.bp)
		assert.Zero(t, big.NewInt(tt.net).Cmp(net), "net of %d at %d bp", tt.amount, tt.bp)
		assert.Zero(t, big.NewInt(tt.amount).Cmp(new(big.Int).Add(fee, net)))
	}
}

func TestAdd(t *testing.T) {
	sum, err := Add(big.NewInt(1), big.NewInt(2))
	require.NoError(t, err)
	assert.Zero(t, big.NewInt(3).Cmp(sum))

	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	_, err = Add(max, big.NewInt(1))
	assert.ErrorIs(t, err, ErrOverflow)
}
