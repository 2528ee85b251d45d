package chain

import "sync/atomic"

// defaultSeed is the global seed until SetSeed is called.
const defaultSeed uint32 = 2976579765

var globalSeed atomic.Uint32

func init() {
	globalSeed.Store(defaultSeed)
}

// SetSeed sets the process-wide seed used by every table not created WithSeed.
//
// The change is visible immediately. Keys inserted under the previous seed are no longer found by lookups until the
// table is rehashed with Table.Rehash, so call SetSeed once at startup, before any table is populated.
func SetSeed(seed uint32) {
	globalSeed.Store(seed)
}
