// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokenfarm/builtin/solidity"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/lvldb"
	"github.com/vechain/tokenfarm/state"
)

func newRegistry(t *testing.T) *Service {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(solidity.NewContext(farm.Address{1}, state.NewStater(db).NewState(), nil))
}

func TestRegistry(t *testing.T) {
	reg := newRegistry(t)

	count, err := reg.Count()
	require.NoError(t, err)
	assert.Zero(t, count)

	addrs := []farm.Address{{3}, {1}, {2}}
	for _, a := range addrs {
		require.NoError(t, reg.Register(a))
	}

	count, err = reg.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)

	first, err := reg.At(0)
	require.NoError(t, err)
	assert.Equal(t, farm.Address{3}, first)

	var seen []farm.Address
	require.NoError(t, reg.Each(func(a farm.Address) error {
		seen = append(seen, a)
		return nil
	}))
	assert.Equal(t, addrs, seen)

	stop := errors.New("stop")
	calls := 0
	err = reg.Each(func(farm.Address) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestList(t *testing.T) {
	reg := newRegistry(t)
	for i := byte(0); i < 5; i++ {
		require.NoError(t, reg.Register(farm.Address{i}))
	}

	tests := []struct {
		offset, limit uint64
		want          []farm.Address
	}{
		{0, 2, []farm.Address{{0}, {1}}},
		{3, 10, []farm.Address{{3}, {4}}},
		{5, 10, []farm.Address{}},
		{1, 0, []farm.Address{}},
	}
	for _, tt := range tests {
		got, err := reg.List(tt.offset, tt.limit)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "offset %d limit %d", tt.offset, tt.limit)
	}
}
