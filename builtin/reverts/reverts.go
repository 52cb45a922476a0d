// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"

	"github.com/vechain/tokenfarm/abi"
)

// ErrRevert is a business rule violation. The clause is rolled back and the
// message is reported to the caller as the revert reason.
type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// Bytes returns the abi encoded Error(string) output of the revert.
func (e *ErrRevert) Bytes() []byte {
	if e == nil {
		return nil
	}
	return abi.PackRevert(e.message)
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// Reason returns the message of the revert wrapped in err, if any.
func Reason(err error) (string, bool) {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.message, true
	}
	return "", false
}
