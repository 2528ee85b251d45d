package hashfn

import (
	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/xxh3"
)

const prime32 = 0xfffffffb // Just the last 32-bit prime number

// XXHash32 is a seeded XXH64 digest folded to 32 bits.
func XXHash32(data []byte, seed uint32) uint32 {
	d := xxhash.NewWithSeed(uint64(seed))
	_, _ = d.Write(data) // never fails
	h := d.Sum64()
	// fold 64-bit hash to 32-bit
	return uint32(h % prime32)
}

// XXH3_128 is a seeded XXH3 128-bit digest.
func XXH3_128(data []byte, seed uint32) [16]byte {
	return xxh3.Hash128Seed(data, uint64(seed)).Bytes()
}
