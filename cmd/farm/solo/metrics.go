// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solo

import "github.com/vechain/tokenfarm/metrics"

var (
	metricTotalStaked  = metrics.LazyLoadGauge("farm_total_staked")
	metricStakersCount = metrics.LazyLoadGauge("farm_stakers_count")
)
