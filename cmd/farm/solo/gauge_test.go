// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solo

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGaugeValue(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), 200)

	tests := []struct {
		name string
		in   *big.Int
		want int64
	}{
		{"zero", new(big.Int), 0},
		{"small", big.NewInt(42), 42},
		{"max", big.NewInt(math.MaxInt64), math.MaxInt64},
		{"above max", new(big.Int).Add(big.NewInt(math.MaxInt64), big.NewInt(1)), math.MaxInt64},
		{"huge", huge, math.MaxInt64},
		{"negative huge", new(big.Int).Neg(huge), math.MinInt64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gaugeValue(tt.in))
		})
	}
}
