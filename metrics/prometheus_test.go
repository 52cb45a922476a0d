// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func gather(t *testing.T) map[string]*dto.MetricFamily {
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	result := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		result[mf.GetName()] = mf
	}
	return result
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()
	require.NotNil(t, HTTPHandler())

	Counter("prom_count").Add(1)
	Counter("prom_count").Add(2)

	vec := CounterVec("prom_count_vec", []string{"op"})
	vec.AddWithLabel(1, map[string]string{"op": "deposit"})
	vec.AddWithLabel(4, map[string]string{"op": "claim"})

	gauge := Gauge("prom_gauge")
	gauge.Set(10)
	gauge.Add(-3)

	hist := HistogramVec("prom_hist", []string{"code"}, BucketHTTPReqs)
	hist.ObserveWithLabels(5, map[string]string{"code": "200"})
	hist.ObserveWithLabels(7, map[string]string{"code": "200"})

	families := gather(t)

	require.Equal(t, float64(3), families["tokenfarm_prom_count"].Metric[0].GetCounter().GetValue())

	vecSum := 0.0
	for _, m := range families["tokenfarm_prom_count_vec"].Metric {
		vecSum += m.GetCounter().GetValue()
	}
	require.Equal(t, float64(5), vecSum)

	require.Equal(t, float64(7), families["tokenfarm_prom_gauge"].Metric[0].GetGauge().GetValue())
	require.Equal(t, float64(12), families["tokenfarm_prom_hist"].Metric[0].GetHistogram().GetSampleSum())
	require.Equal(t, uint64(2), families["tokenfarm_prom_hist"].Metric[0].GetHistogram().GetSampleCount())
}

func TestLazyLoading(t *testing.T) {
	metrics = defaultNoopMetrics()

	lazyGauge := LazyLoadGauge("lazy_gauge")
	lazyCounter := LazyLoadCounter("lazy_counter")
	lazyCounterVec := LazyLoadCounterVec("lazy_counter_vec", nil)
	lazyHistogramVec := LazyLoadHistogramVec("lazy_histogram_vec", nil, nil)

	// meters resolve to the implementation active at first use
	InitializePrometheusMetrics()

	require.IsType(t, &promGaugeMeter{}, lazyGauge())
	require.IsType(t, &promCountMeter{}, lazyCounter())
	require.IsType(t, &promCountVecMeter{}, lazyCounterVec())
	require.IsType(t, &promHistogramVecMeter{}, lazyHistogramVec())
}
