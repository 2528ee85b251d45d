package chainmetrics

import (
	"strings"
	"testing"

	"github.com/bdragon300/chainhash/chain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("scrape a table; should report its stats", func(t *testing.T) {
		table, err := chain.New(chain.FlagNone, 0.1)
		require.NoError(t, err)
		for _, k := range []string{"a", "b", "c"} {
			require.NoError(t, table.Insert([]byte(k), []byte(k)))
		}
		require.NoError(t, table.Resize(128))

		reg := prometheus.NewPedanticRegistry()
		require.NoError(t, reg.Register(NewCollector("chainhash", "test", table)))

		expected := `
# HELP chainhash_keys Number of keys in the table.
# TYPE chainhash_keys gauge
chainhash_keys{table="test"} 3
# HELP chainhash_buckets Size of the bucket array.
# TYPE chainhash_buckets gauge
chainhash_buckets{table="test"} 128
# HELP chainhash_resizes_total Number of bucket array rebuilds.
# TYPE chainhash_resizes_total counter
chainhash_resizes_total{table="test"} 1
`
		err = testutil.GatherAndCompare(reg, strings.NewReader(expected),
			"chainhash_keys", "chainhash_buckets", "chainhash_resizes_total")
		assert.NoError(t, err)

		n, err := testutil.GatherAndCount(reg)
		require.NoError(t, err)
		assert.Equal(t, 6, n)
	})

	t.Run("table changes between scrapes; should report fresh values", func(t *testing.T) {
		table, err := chain.New(chain.FlagNone, 0.5)
		require.NoError(t, err)
		reg := prometheus.NewPedanticRegistry()
		require.NoError(t, reg.Register(NewCollector("chainhash", "fresh", table)))

		require.NoError(t, table.Insert([]byte("a"), []byte("1")))
		families, err := reg.Gather()
		require.NoError(t, err)
		values := make(map[string]float64)
		for _, mf := range families {
			values[mf.GetName()] = mf.GetMetric()[0].GetGauge().GetValue()
		}
		assert.Equal(t, 1.0, values["chainhash_keys"])
		assert.Equal(t, 0.5, values["chainhash_max_load_factor"])
		assert.Equal(t, 0.0, values["chainhash_load_factor"])
	})
}
