package hashfn

import (
	"encoding/binary"
	"math/bits"

	"github.com/twmb/murmur3"
)

// Murmur3x86_32 is MurmurHash3_x86_32.
func Murmur3x86_32(data []byte, seed uint32) uint32 {
	return murmur3.SeedSum32(seed, data)
}

// Murmur3x64_128 is MurmurHash3_x64_128. Both 64-bit lanes start from the seed, as in the reference code.
func Murmur3x64_128(data []byte, seed uint32) [16]byte {
	h1, h2 := murmur3.SeedSum128(uint64(seed), uint64(seed), data)
	var out [16]byte
	binary.LittleEndian.PutUint64(out[0:8], h1)
	binary.LittleEndian.PutUint64(out[8:16], h2)
	return out
}

const (
	x86c1 = 0x239b961b
	x86c2 = 0xab0e9789
	x86c3 = 0x38b34ae5
	x86c4 = 0xa1e38b93
)

// Murmur3x86_128 is MurmurHash3_x86_128, the variant tuned for 32-bit targets.
func Murmur3x86_128(data []byte, seed uint32) [16]byte {
	h1, h2, h3, h4 := seed, seed, seed, seed
	n := len(data)

	// body
	nblocks := n / 16
	for i := 0; i < nblocks; i++ {
		b := data[i*16 : i*16+16]
		k1 := binary.LittleEndian.Uint32(b[0:4])
		k2 := binary.LittleEndian.Uint32(b[4:8])
		k3 := binary.LittleEndian.Uint32(b[8:12])
		k4 := binary.LittleEndian.Uint32(b[12:16])

		k1 *= x86c1
		k1 = bits.RotateLeft32(k1, 15)
		k1 *= x86c2
		h1 ^= k1
		h1 = bits.RotateLeft32(h1, 19)
		h1 += h2
		h1 = h1*5 + 0x561ccd1b

		k2 *= x86c2
		k2 = bits.RotateLeft32(k2, 16)
		k2 *= x86c3
		h2 ^= k2
		h2 = bits.RotateLeft32(h2, 17)
		h2 += h3
		h2 = h2*5 + 0x0bcaa747

		k3 *= x86c3
		k3 = bits.RotateLeft32(k3, 17)
		k3 *= x86c4
		h3 ^= k3
		h3 = bits.RotateLeft32(h3, 15)
		h3 += h4
		h3 = h3*5 + 0x96cd1c35

		k4 *= x86c4
		k4 = bits.RotateLeft32(k4, 18)
		k4 *= x86c1
		h4 ^= k4
		h4 = bits.RotateLeft32(h4, 13)
		h4 += h1
		h4 = h4*5 + 0x32ac3b17
	}

	// tail
	tail := data[nblocks*16:]
	var k1, k2, k3, k4 uint32
	switch len(tail) {
	case 15:
		k4 ^= uint32(tail[14]) << 16
		fallthrough
	case 14:
		k4 ^= uint32(tail[13]) << 8
		fallthrough
	case 13:
		k4 ^= uint32(tail[12])
		k4 *= x86c4
		k4 = bits.RotateLeft32(k4, 18)
		k4 *= x86c1
		h4 ^= k4
		fallthrough
	case 12:
		k3 ^= uint32(tail[11]) << 24
		fallthrough
	case 11:
		k3 ^= uint32(tail[10]) << 16
		fallthrough
	case 10:
		k3 ^= uint32(tail[9]) << 8
		fallthrough
	case 9:
		k3 ^= uint32(tail[8])
		k3 *= x86c3
		k3 = bits.RotateLeft32(k3, 17)
		k3 *= x86c4
		h3 ^= k3
		fallthrough
	case 8:
		k2 ^= uint32(tail[7]) << 24
		fallthrough
	case 7:
		k2 ^= uint32(tail[6]) << 16
		fallthrough
	case 6:
		k2 ^= uint32(tail[5]) << 8
		fallthrough
	case 5:
		k2 ^= uint32(tail[4])
		k2 *= x86c2
		k2 = bits.RotateLeft32(k2, 16)
		k2 *= x86c3
		h2 ^= k2
		fallthrough
	case 4:
		k1 ^= uint32(tail[3]) << 24
		fallthrough
	case 3:
		k1 ^= uint32(tail[2]) << 16
		fallthrough
	case 2:
		k1 ^= uint32(tail[1]) << 8
		fallthrough
	case 1:
		k1 ^= uint32(tail[0])
		k1 *= x86c1
		k1 = bits.RotateLeft32(k1, 15)
		k1 *= x86c2
		h1 ^= k1
	}

	// finalization
	l := uint32(n)
	h1 ^= l
	h2 ^= l
	h3 ^= l
	h4 ^= l

	h1 += h2 + h3 + h4
	h2 += h1
	h3 += h1
	h4 += h1

	h1 = fmix32(h1)
	h2 = fmix32(h2)
	h3 = fmix32(h3)
	h4 = fmix32(h4)

	h1 += h2 + h3 + h4
	h2 += h1
	h3 += h1
	h4 += h1

	var out [16]byte
	binary.LittleEndian.PutUint32(out[0:4], h1)
	binary.LittleEndian.PutUint32(out[4:8], h2)
	binary.LittleEndian.PutUint32(out[8:12], h3)
	binary.LittleEndian.PutUint32(out[12:16], h4)
	return out
}

func fmix32(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}
