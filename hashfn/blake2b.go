package hashfn

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// Blake2b128 is a keyed 128-bit BLAKE2b digest. The seed is used as the MAC key, so digests are unpredictable
// without it. Much slower than Murmur3 or XXH3, it suits deduplication of attacker-supplied data.
var Blake2b128 Hasher128 = Hasher128Func(blake2b128)

func blake2b128(data []byte, seed uint32) [16]byte {
	var key [4]byte
	binary.LittleEndian.PutUint32(key[:], seed)
	h, err := blake2b.New(16, key[:])
	if err != nil {
		// Only happens with size out of 1..64 or key longer than 64 bytes
		panic(err)
	}
	_, _ = h.Write(data)
	var out [16]byte
	copy(out[:], h.Sum(nil))
	return out
}
