package chain

import (
	"testing"

	"github.com/bdragon300/chainhash/hashfn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubFamily(h32 func(data []byte, seed uint32) uint32) hashfn.Family {
	zero := hashfn.Hasher128Func(func([]byte, uint32) [16]byte { return [16]byte{} })
	return hashfn.Family{
		Name:    "stub",
		X86_32:  hashfn.Hasher32Func(h32),
		X86_128: zero,
		X64_128: zero,
	}
}

// firstByte puts keys to the bucket of their first byte.
func firstByte(data []byte, _ uint32) uint32 {
	return uint32(data[0])
}

// sameBucket puts all keys to bucket 0.
func sameBucket([]byte, uint32) uint32 {
	return 0
}

func makeChain(keys ...string) *Entry {
	var head, tail *Entry
	for _, k := range keys {
		e := newEntry([]byte(k), []byte("v"+k))
		e.linked = true
		if head == nil {
			head = e
		} else {
			tail.next = e
		}
		tail = e
	}
	return head
}

func chainKeys(head *Entry) []string {
	var res []string
	for e := head; e != nil; e = e.next {
		res = append(res, string(e.key))
	}
	return res
}

func TestFindEntry(t *testing.T) {
	t.Run("key in the middle; should return it with predecessor", func(t *testing.T) {
		head := makeChain("a", "b", "c")
		prev, match := findEntry(head, []byte("b"))
		require.NotNil(t, match)
		assert.Equal(t, []byte("b"), match.key)
		assert.Same(t, head, prev)
	})

	t.Run("key at the head; should return nil predecessor", func(t *testing.T) {
		head := makeChain("a", "b")
		prev, match := findEntry(head, []byte("a"))
		assert.Same(t, head, match)
		assert.Nil(t, prev)
	})

	t.Run("missing key; should return the tail", func(t *testing.T) {
		head := makeChain("a", "b", "c")
		prev, match := findEntry(head, []byte("d"))
		assert.Nil(t, match)
		require.NotNil(t, prev)
		assert.Equal(t, []byte("c"), prev.key)
	})

	t.Run("key is a prefix of a stored key; should not match", func(t *testing.T) {
		head := makeChain("abc")
		_, match := findEntry(head, []byte("ab"))
		assert.Nil(t, match)
	})

	t.Run("empty chain; should return nothing", func(t *testing.T) {
		prev, match := findEntry(nil, []byte("a"))
		assert.Nil(t, prev)
		assert.Nil(t, match)
	})
}

func TestRelinkEntry(t *testing.T) {
	t.Run("relink to empty and non-empty buckets; should keep order and report collisions", func(t *testing.T) {
		buckets := make([]*Entry, 4)
		assert.False(t, relinkEntry(buckets, 1, newEntry([]byte("a"), nil)))
		assert.True(t, relinkEntry(buckets, 1, newEntry([]byte("b"), nil)))
		assert.True(t, relinkEntry(buckets, 1, newEntry([]byte("c"), nil)))
		assert.False(t, relinkEntry(buckets, 3, newEntry([]byte("d"), nil)))

		assert.Equal(t, []string{"a", "b", "c"}, chainKeys(buckets[1]))
		assert.Equal(t, []string{"d"}, chainKeys(buckets[3]))
		assert.Nil(t, buckets[0])
		assert.Nil(t, buckets[2])
	})
}

func TestUnlinkAndReplaceEntry(t *testing.T) {
	t.Run("unlink head, middle and tail; should keep the rest", func(t *testing.T) {
		buckets := []*Entry{makeChain("a", "b", "c", "d")}

		prev, e := findEntry(buckets[0], []byte("a"))
		unlinkEntry(buckets, 0, prev, e)
		assert.Equal(t, []string{"b", "c", "d"}, chainKeys(buckets[0]))

		prev, e = findEntry(buckets[0], []byte("c"))
		unlinkEntry(buckets, 0, prev, e)
		assert.Equal(t, []string{"b", "d"}, chainKeys(buckets[0]))

		prev, e = findEntry(buckets[0], []byte("d"))
		unlinkEntry(buckets, 0, prev, e)
		assert.Equal(t, []string{"b"}, chainKeys(buckets[0]))
	})

	t.Run("replace in the middle; should take the old position and release the old entry", func(t *testing.T) {
		buckets := []*Entry{makeChain("a", "b", "c")}
		prev, old := findEntry(buckets[0], []byte("b"))
		e := newEntry([]byte("b"), []byte("new"))

		replaceEntry(buckets, 0, prev, old, e)

		assert.Equal(t, []string{"a", "b", "c"}, chainKeys(buckets[0]))
		assert.Same(t, e, buckets[0].next)
		assert.True(t, e.linked)
		assert.Nil(t, old.key)
		assert.Nil(t, old.next)
		assert.False(t, old.linked)
	})
}

func TestReleaseAll(t *testing.T) {
	t.Run("release all chains; should empty buckets and entries", func(t *testing.T) {
		a := makeChain("a", "b")
		c := makeChain("c")
		buckets := []*Entry{a, nil, c}

		releaseAll(buckets)

		assert.Equal(t, []*Entry{nil, nil, nil}, buckets)
		assert.Nil(t, a.key)
		assert.Nil(t, a.next)
		assert.Nil(t, c.value)
	})
}

func TestAllocBuckets(t *testing.T) {
	t.Run("size within limit; should allocate", func(t *testing.T) {
		buckets, err := allocBuckets(128)
		require.NoError(t, err)
		assert.Len(t, buckets, 128)
	})

	t.Run("size over the limit; should fail with out of memory", func(t *testing.T) {
		_, err := allocBuckets(MaxArraySize + 1)
		assert.ErrorIs(t, err, ErrOutOfMemory)
	})
}

func TestRebuild(t *testing.T) {
	t.Run("grow; should recount collisions for the new layout", func(t *testing.T) {
		table, err := New(FlagNoAutoresize, 1, WithHashFamily(stubFamily(firstByte)))
		require.NoError(t, err)
		for _, k := range []byte{0, 64, 128, 1} {
			require.NoError(t, table.Insert([]byte{k}, []byte{k}))
		}
		require.Equal(t, uint32(2), table.collisions)

		require.NoError(t, table.rebuild(128, "test"))

		assert.Equal(t, uint32(128), table.arraySize)
		assert.Equal(t, uint32(1), table.collisions) // 0 and 128 share bucket 0
		assert.Equal(t, []string{"\x00", "\x80"}, chainKeys(table.buckets[0]))
		assert.Equal(t, []string{"\x40"}, chainKeys(table.buckets[64]))
		assert.Equal(t, []string{"\x01"}, chainKeys(table.buckets[1]))
		assert.Equal(t, 1, table.resizes)
	})

	t.Run("shrink; should move everything to fewer buckets", func(t *testing.T) {
		table, err := New(FlagNoAutoresize, 1, WithHashFamily(stubFamily(firstByte)))
		require.NoError(t, err)
		for _, k := range []byte{0, 1, 2, 3} {
			require.NoError(t, table.Insert([]byte{k}, []byte{k}))
		}
		require.Equal(t, uint32(0), table.collisions)

		require.NoError(t, table.rebuild(2, "test"))

		assert.Equal(t, []string{"\x00", "\x02"}, chainKeys(table.buckets[0]))
		assert.Equal(t, []string{"\x01", "\x03"}, chainKeys(table.buckets[1]))
		assert.Equal(t, uint32(2), table.collisions)
		assert.InDelta(t, 1.0, table.loadFactor, 1e-9)
	})
}
