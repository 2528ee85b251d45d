// Package hashfn provides the digest primitives a chain.Table binds to.
//
// A primitive is a pure function of a byte string and a 32-bit seed. Three variants are bound per table:
// a 32-bit one used for bucket indexing and two 128-bit ones (tuned for 32-bit and 64-bit targets) exposed to callers
// that need wider digests, e.g. for deduplication.
package hashfn

// Hasher32 computes a 32-bit digest of data mixed with seed.
type Hasher32 interface {
	Sum32(data []byte, seed uint32) uint32
}

// Hasher128 computes a 128-bit digest of data mixed with seed.
type Hasher128 interface {
	Sum128(data []byte, seed uint32) [16]byte
}

// Hasher32Func adapts an ordinary function to Hasher32.
type Hasher32Func func(data []byte, seed uint32) uint32

func (f Hasher32Func) Sum32(data []byte, seed uint32) uint32 {
	return f(data, seed)
}

// Hasher128Func adapts an ordinary function to Hasher128.
type Hasher128Func func(data []byte, seed uint32) [16]byte

func (f Hasher128Func) Sum128(data []byte, seed uint32) [16]byte {
	return f(data, seed)
}

// Family is a set of the three digest variants a table is bound to. X86_32 is the one used for indexing.
type Family struct {
	Name    string
	X86_32  Hasher32
	X86_128 Hasher128
	X64_128 Hasher128
}

// Valid reports whether all three variants are set.
func (f Family) Valid() bool {
	return f.X86_32 != nil && f.X86_128 != nil && f.X64_128 != nil
}

var (
	// Murmur3 is the MurmurHash3 family. It is the default one.
	Murmur3 = Family{
		Name:    "murmur3",
		X86_32:  Hasher32Func(Murmur3x86_32),
		X86_128: Hasher128Func(Murmur3x86_128),
		X64_128: Hasher128Func(Murmur3x64_128),
	}

	// XXHash is the xxHash family: XXH64 folded to 32 bits for indexing, XXH3-128 for wide digests.
	XXHash = Family{
		Name:    "xxhash",
		X86_32:  Hasher32Func(XXHash32),
		X86_128: Hasher128Func(XXH3_128),
		X64_128: Hasher128Func(XXH3_128),
	}
)
