// Package chainmetrics exports chain.Table counters as Prometheus metrics.
package chainmetrics

import (
	"github.com/bdragon300/chainhash/chain"
	"github.com/prometheus/client_golang/prometheus"
)

// StatsSource is anything that reports table stats, normally a *chain.Table.
type StatsSource interface {
	Stats() chain.Stats
}

// Collector is a prometheus.Collector reading stats of one table on every scrape.
//
// A table is not safe for concurrent use, so if it's modified from other goroutines, the src must synchronize
// Stats calls with them.
type Collector struct {
	src StatsSource

	keys          *prometheus.Desc
	buckets       *prometheus.Desc
	collisions    *prometheus.Desc
	loadFactor    *prometheus.Desc
	maxLoadFactor *prometheus.Desc
	resizes       *prometheus.Desc
}

// NewCollector creates a Collector for src. Every metric has a "table" label set to name.
func NewCollector(namespace, name string, src StatsSource) *Collector {
	labels := prometheus.Labels{"table": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", metric), help, nil, labels)
	}
	return &Collector{
		src:           src,
		keys:          desc("keys", "Number of keys in the table."),
		buckets:       desc("buckets", "Size of the bucket array."),
		collisions:    desc("collisions", "Collisions since the last resize."),
		loadFactor:    desc("load_factor", "Ratio of collisions to bucket array size."),
		maxLoadFactor: desc("max_load_factor", "Load factor that triggers autoresize."),
		resizes:       desc("resizes_total", "Number of bucket array rebuilds."),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.keys
	ch <- c.buckets
	ch <- c.collisions
	ch <- c.loadFactor
	ch <- c.maxLoadFactor
	ch <- c.resizes
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.keys, prometheus.GaugeValue, float64(s.Keys))
	ch <- prometheus.MustNewConstMetric(c.buckets, prometheus.GaugeValue, float64(s.ArraySize))
	ch <- prometheus.MustNewConstMetric(c.collisions, prometheus.GaugeValue, float64(s.Collisions))
	ch <- prometheus.MustNewConstMetric(c.loadFactor, prometheus.GaugeValue, s.LoadFactor)
	ch <- prometheus.MustNewConstMetric(c.maxLoadFactor, prometheus.GaugeValue, s.MaxLoadFactor)
	ch <- prometheus.MustNewConstMetric(c.resizes, prometheus.CounterValue, float64(s.Resizes))
}
