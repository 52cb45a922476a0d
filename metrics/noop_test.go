// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	require.Nil(t, HTTPHandler())

	Counter("deposits").Add(1)
	CounterVec("claims", []string{"result"}).AddWithLabel(1, map[string]string{"unknown": "label"})
	Gauge("total_staked").Set(100)
	HistogramVec("api", []string{"code"}, BucketHTTPReqs).ObserveWithLabels(3, nil)

	require.IsType(t, &noopMeters{}, Counter("deposits"))
}
