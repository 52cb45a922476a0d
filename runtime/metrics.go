// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/vechain/tokenfarm/metrics"

var (
	metricTxCount = metrics.LazyLoadCounterVec("runtime_tx_count", []string{"reverted"})
	metricTxGas   = metrics.LazyLoadHistogramVec("runtime_tx_gas_used", []string{}, []int64{20_000, 50_000, 100_000, 200_000, 500_000, 1_000_000, 5_000_000})
)
