package chain

import "github.com/sugawarayuuta/sonnet"

// Stats is a snapshot of table counters.
type Stats struct {
	Keys          int     `json:"keys"`
	ArraySize     uint32  `json:"array_size"`
	Collisions    uint32  `json:"collisions"`
	LoadFactor    float64 `json:"load_factor"`
	MaxLoadFactor float64 `json:"max_load_factor"`
	Resizes       int     `json:"resizes"`
	Flags         string  `json:"flags"`
	HashFamily    string  `json:"hash_family"`
}

// Stats returns the current counters.
func (t *Table) Stats() Stats {
	return Stats{
		Keys:          t.keyCount,
		ArraySize:     t.arraySize,
		Collisions:    t.collisions,
		LoadFactor:    t.loadFactor,
		MaxLoadFactor: t.maxLoadFactor,
		Resizes:       t.resizes,
		Flags:         t.flags.String(),
		HashFamily:    t.family.Name,
	}
}

// ChainLengths returns a histogram of chain lengths: the n-th element is the number of buckets with n entries.
func (t *Table) ChainLengths() []int {
	var hist []int
	for _, head := range t.buckets {
		n := 0
		for e := head; e != nil; e = e.next {
			n++
		}
		for len(hist) <= n {
			hist = append(hist, 0)
		}
		hist[n]++
	}
	return hist
}

// DebugInfo is what DebugJSON encodes.
type DebugInfo struct {
	Stats        Stats `json:"stats"`
	ChainLengths []int `json:"chain_lengths"`
}

// DebugJSON returns the table stats and the chain length histogram as JSON.
func (t *Table) DebugJSON() ([]byte, error) {
	return sonnet.Marshal(DebugInfo{
		Stats:        t.Stats(),
		ChainLengths: t.ChainLengths(),
	})
}
