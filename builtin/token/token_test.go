// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/lvldb"
	"github.com/vechain/tokenfarm/state"
)

var (
	minter = farm.BytesToAddress([]byte("minter"))
	alice  = farm.BytesToAddress([]byte("alice"))
	bob    = farm.BytesToAddress([]byte("bob"))
	vault  = farm.BytesToAddress([]byte("vault"))
)

func newToken(t *testing.T) *Token {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tk := New(farm.BytesToAddress([]byte("LP")), state.NewStater(db).NewState(), nil)
	tk.Initialize(minter)
	return tk
}

func balanceOf(t *testing.T, tk *Token, addr farm.Address) *big.Int {
	bal, err := tk.BalanceOf(addr)
	require.NoError(t, err)
	return bal
}

func assertBalance(t *testing.T, tk *Token, addr farm.Address, want int64) {
	t.Helper()
	bal := balanceOf(t, tk, addr)
	assert.Zerof(t, big.NewInt(want).Cmp(bal), "balance of %v: want %d, got %v", addr, want, bal)
}

func TestMint(t *testing.T) {
	tk := newToken(t)

	got, err := tk.Minter()
	require.NoError(t, err)
	assert.Equal(t, minter, got)

	assert.ErrorIs(t, tk.Mint(alice, alice, big.NewInt(1)), ErrNotMinter)
	assert.ErrorIs(t, tk.Mint(minter, alice, big.NewInt(0)), ErrInvalidAmount)

	require.NoError(t, tk.Mint(minter, alice, big.NewInt(100)))
	require.NoError(t, tk.Mint(minter, bob, big.NewInt(50)))

	supply, err := tk.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(150), supply)
	assertBalance(t, tk, alice, 100)
	assertBalance(t, tk, vault, 0)
}

func TestTransfer(t *testing.T) {
	tk := newToken(t)
	require.NoError(t, tk.Mint(minter, alice, big.NewInt(100)))

	tests := []struct {
		name   string
		amount int64
		ok     bool
		alice  int64
		bob    int64
	}{
		{"partial", 30, true, 70, 30},
		{"insufficient", 71, false, 70, 30},
		{"zero", 0, true, 70, 30},
		{"all", 70, true, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := tk.Transfer(alice, bob, big.NewInt(tt.amount))
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assertBalance(t, tk, alice, tt.alice)
			assertBalance(t, tk, bob, tt.bob)
		})
	}

	ok, err := tk.Transfer(bob, bob, big.NewInt(10))
	require.NoError(t, err)
	assert.True(t, ok)
	assertBalance(t, tk, bob, 100)
}

func TestTransferFrom(t *testing.T) {
	tk := newToken(t)
	require.NoError(t, tk.Mint(minter, alice, big.NewInt(100)))

	// no allowance
	ok, err := tk.As(vault).TransferFrom(alice, vault, big.NewInt(10))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, tk.Approve(alice, vault, big.NewInt(60)))
	allowance, err := tk.Allowance(alice, vault)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(60), allowance)

	ok, err = tk.As(vault).TransferFrom(alice, vault, big.NewInt(40))
	require.NoError(t, err)
	assert.True(t, ok)
	assertBalance(t, tk, alice, 60)
	assertBalance(t, tk, vault, 40)

	allowance, _ = tk.Allowance(alice, vault)
	assert.Equal(t, big.NewInt(20), allowance)

	// exceeds remaining allowance
	ok, err = tk.As(vault).TransferFrom(alice, vault, big.NewInt(21))
	require.NoError(t, err)
	assert.False(t, ok)

	// allowance covers it but balance does not
	require.NoError(t, tk.Approve(alice, vault, big.NewInt(1000)))
	ok, err = tk.As(vault).TransferFrom(alice, vault, big.NewInt(61))
	require.NoError(t, err)
	assert.False(t, ok)
	allowance, _ = tk.Allowance(alice, vault)
	assert.Equal(t, big.NewInt(1000), allowance)

	// the holder transfers its own balance
	ok, err = tk.As(vault).Transfer(bob, big.NewInt(40))
	require.NoError(t, err)
	assert.True(t, ok)
	assertBalance(t, tk, bob, 40)
}
