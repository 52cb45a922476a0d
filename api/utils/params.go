// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/farm"
)

// ParseAddress parses a path or query parameter as an address, errors are bad requests.
func ParseAddress(name, value string) (farm.Address, error) {
	addr, err := farm.ParseAddress(value)
	if err != nil {
		return farm.Address{}, BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}

// ParseUint parses an optional query parameter, def is returned when it is empty.
func ParseUint(name, value string, def uint64) (uint64, error) {
	if value == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, BadRequest(errors.WithMessage(err, name))
	}
	return n, nil
}
