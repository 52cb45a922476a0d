// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api_test

import (
	"testing"

	"github.com/vechain/tokenfarm/builtin"
	"github.com/vechain/tokenfarm/tx"
)

func mustFarmClause(t *testing.T, method string, args ...any) *tx.Clause {
	return tx.NewClause(builtin.TokenFarm.Address).WithData(farmData(t, method, args...))
}
