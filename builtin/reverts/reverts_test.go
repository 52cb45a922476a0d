// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/vechain/tokenfarm/abi"
)

func Test_Reverts(t *testing.T) {
	revert := New("test")
	assert.Equal(t, "test", revert.message)
	assert.Equal(t, revert.Error(), revert.message)

	assert.True(t, IsRevertErr(revert))
	assert.True(t, IsRevertErr(errors.WithMessage(revert, "deposit")))
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr(fmt.Errorf("test")))
	assert.False(t, IsRevertErr(big.NewInt(0)))

	reason, ok := Reason(errors.Wrap(revert, "claim"))
	assert.True(t, ok)
	assert.Equal(t, "test", reason)

	_, ok = Reason(errors.New("other"))
	assert.False(t, ok)
}

func Test_RevertBytes(t *testing.T) {
	var nilRevert *ErrRevert
	assert.Nil(t, nilRevert.Bytes())

	reason, err := abi.UnpackRevert(New("No rewards to claim").Bytes())
	assert.NoError(t, err)
	assert.Equal(t, "No rewards to claim", reason)
}
