// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokenfarm

import (
	"github.com/vechain/tokenfarm/builtin/reverts"
	"github.com/vechain/tokenfarm/builtin/tokenfarm/accrual"
)

// Errors returned by farm operations. Each one aborts the whole operation.
var (
	ErrInvalidAmount      = reverts.New("Amount must be greater than 0")
	ErrTransferFailed     = reverts.New("Transfer failed")
	ErrNotStaking         = reverts.New("Not a staker")
	ErrNoTokens           = reverts.New("No tokens to withdraw")
	ErrNoRewards          = reverts.New("No rewards to claim")
	ErrNoFees             = reverts.New("No fees to withdraw")
	ErrFeeTooHigh         = reverts.New("Fee too high")
	ErrUnauthorized       = reverts.New("Ownable: caller is not the owner")
	ErrInvalidOwner       = reverts.New("Ownable: new owner is the zero address")
	ErrReentrantCall      = reverts.New("ReentrancyGuard: reentrant call")
	ErrAlreadyInitialized = reverts.New("farm already initialized")
	ErrOverflow           = accrual.ErrOverflow
)
