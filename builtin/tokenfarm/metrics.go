// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokenfarm

import "github.com/vechain/tokenfarm/metrics"

var metricOperationCount = metrics.LazyLoadCounterVec("farm_operation_count", []string{"op", "result"})

func recordOperation(op string, err error) {
	result := "ok"
	if err != nil {
		result = "failed"
	}
	metricOperationCount().AddWithLabel(1, map[string]string{"op": op, "result": result})
}
