package chain

import (
	"fmt"
	"iter"
	"math"
	"strings"

	"github.com/bdragon300/chainhash/hashfn"
	"go.uber.org/zap"
)

const (
	// InitialSize is the default bucket array length of a new table.
	InitialSize = 64
	// MaxArraySize is the largest bucket array a table may have.
	MaxArraySize = 1 << 31

	defaultGrowthFactor = 2
)

// Flags are table options, combinable with bitwise OR.
type Flags int

const (
	// FlagNone sets no options.
	FlagNone Flags = 0
	// FlagKeyConst declares all keys have the same length. Inserting a key of another length fails.
	FlagKeyConst Flags = 1
	// FlagValueConst declares all values have the same length. Value buffers are reused on overwrite.
	FlagValueConst Flags = 2
	// FlagNoAutoresize disables growth on collisions. The table is resized only by Resize.
	FlagNoAutoresize Flags = 4
)

func (f Flags) String() string {
	if f == FlagNone {
		return "none"
	}
	var names []string
	if f&FlagKeyConst != 0 {
		names = append(names, "key_const")
	}
	if f&FlagValueConst != 0 {
		names = append(names, "value_const")
	}
	if f&FlagNoAutoresize != 0 {
		names = append(names, "no_autoresize")
	}
	if rest := f &^ (FlagKeyConst | FlagValueConst | FlagNoAutoresize); rest != 0 {
		names = append(names, fmt.Sprintf("0x%x", int(rest)))
	}
	return strings.Join(names, "|")
}

// New creates an empty table of InitialSize buckets.
//
// maxLoadFactor is the ratio of collisions to bucket array size above which the table grows, e.g. with 0.1 the
// table grows once collisions exceed 1/10th of its size. It must be positive.
func New(flags Flags, maxLoadFactor float64, opts ...Option) (*Table, error) {
	if maxLoadFactor <= 0 || math.IsNaN(maxLoadFactor) || math.IsInf(maxLoadFactor, 0) {
		return nil, fmt.Errorf("max load factor must be positive and finite, got %v: %w", maxLoadFactor, ErrInvalidArgument)
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(flags); err != nil {
		return nil, err
	}

	buckets, err := allocBuckets(cfg.initialSize)
	if err != nil {
		return nil, err
	}
	t := &Table{
		family:        cfg.family,
		seedOverride:  cfg.seed,
		hasSeed:       cfg.hasSeed,
		logger:        cfg.logger,
		growthFactor:  cfg.growthFactor,
		keySize:       cfg.keySize,
		valueSize:     cfg.valueSize,
		buckets:       buckets,
		arraySize:     cfg.initialSize,
		flags:         flags,
		maxLoadFactor: maxLoadFactor,
	}
	t.logger.Debug("table created",
		zap.Stringer("flags", flags),
		zap.Uint32("array_size", t.arraySize),
		zap.Float64("max_load_factor", maxLoadFactor),
		zap.String("hash_family", cfg.family.Name),
	)
	return t, nil
}

// Table is a hash table of byte-string keys and values with separate chaining.
//
// Keys and values are copied on insertion. Every bucket keeps its entries in a singly linked chain in insertion order.
// An insertion into a non-empty bucket counts as a collision, and once the ratio of collisions to the bucket array
// size exceeds the max load factor, the array grows and all entries are relinked.
//
// Table is not safe for concurrent use.
type Table struct {
	family       hashfn.Family
	seedOverride uint32
	hasSeed      bool
	logger       *zap.Logger
	growthFactor uint32
	keySize      int // -1 until known, used with FlagKeyConst
	valueSize    int // -1 until known, used with FlagValueConst

	buckets       []*Entry
	arraySize     uint32
	keyCount      int
	collisions    uint32
	flags         Flags
	maxLoadFactor float64
	loadFactor    float64
	resizes       int
	destroyed     bool
}

// Insert puts a copy of key and value to the table. If the key already exists, its value is replaced.
func (t *Table) Insert(key, value []byte) error {
	if t.destroyed {
		return ErrDestroyed
	}
	if err := t.checkEntry(key, value); err != nil {
		return err
	}

	idx := t.index(key, t.arraySize)
	tail, match := findEntry(t.buckets[idx], key)
	if match != nil {
		match.setValue(value, t.flags&FlagValueConst != 0)
		return nil
	}
	return t.link(idx, tail, newEntry(key, value))
}

// InsertEntry puts an entry to the table without copying. The table takes ownership of the entry. If the key already
// exists, the old entry is replaced by the given one.
func (t *Table) InsertEntry(e *Entry) error {
	if t.destroyed {
		return ErrDestroyed
	}
	if e == nil {
		return fmt.Errorf("nil entry: %w", ErrInvalidArgument)
	}
	if e.linked {
		return fmt.Errorf("entry is already in a table: %w", ErrInvalidArgument)
	}
	if err := t.checkEntry(e.key, e.value); err != nil {
		return err
	}

	idx := t.index(e.key, t.arraySize)
	prev, match := findEntry(t.buckets[idx], e.key)
	if match != nil {
		replaceEntry(t.buckets, idx, prev, match, e)
		return nil
	}
	return t.link(idx, prev, e)
}

// Get returns the value for a key and true, or nil and false if the key is not in the table. The returned slice
// belongs to the table and is valid until the next modification.
func (t *Table) Get(key []byte) ([]byte, bool) {
	if e := t.lookup(key); e != nil {
		return e.value, true
	}
	return nil, false
}

// Contains reports whether the key is in the table.
func (t *Table) Contains(key []byte) bool {
	return t.lookup(key) != nil
}

// Remove deletes the key from the table. Returns false if there was no such key.
func (t *Table) Remove(key []byte) bool {
	if !t.keyFits(key) {
		return false
	}
	idx := t.index(key, t.arraySize)
	prev, match := findEntry(t.buckets[idx], key)
	if match == nil {
		return false
	}
	unlinkEntry(t.buckets, idx, prev, match)
	match.release()
	t.keyCount--
	t.updateLoadFactor()
	return true
}

// Len returns the number of keys in the table.
func (t *Table) Len() int {
	return t.keyCount
}

// Cap returns the bucket array size.
func (t *Table) Cap() int {
	return int(t.arraySize)
}

// Collisions returns the number of collisions since the last resize.
func (t *Table) Collisions() int {
	return int(t.collisions)
}

// LoadFactor returns the ratio of collisions to bucket array size.
func (t *Table) LoadFactor() float64 {
	return t.loadFactor
}

// MaxLoadFactor returns the load factor above which the table grows.
func (t *Table) MaxLoadFactor() float64 {
	return t.maxLoadFactor
}

// Flags returns the flags the table was created with.
func (t *Table) Flags() Flags {
	return t.flags
}

// Keys returns all keys in bucket order, then chain order. The slices belong to the table.
func (t *Table) Keys() [][]byte {
	if t.destroyed {
		return nil
	}
	res := make([][]byte, 0, t.keyCount)
	for _, head := range t.buckets {
		for e := head; e != nil; e = e.next {
			res = append(res, e.key)
		}
	}
	return res
}

// All returns an iterator over key-value pairs in the same order as Keys. The table must not be modified while
// iterating.
func (t *Table) All() iter.Seq2[[]byte, []byte] {
	return func(yield func([]byte, []byte) bool) {
		for _, head := range t.buckets {
			for e := head; e != nil; e = e.next {
				if !yield(e.key, e.value) {
					return
				}
			}
		}
	}
}

// Clear removes all keys and resets collisions. The bucket array size stays the same.
func (t *Table) Clear() {
	if t.destroyed {
		return
	}
	releaseAll(t.buckets)
	t.keyCount = 0
	t.collisions = 0
	t.updateLoadFactor()
	t.logger.Debug("table cleared", zap.Uint32("array_size", t.arraySize))
}

// Index returns the bucket array index for a key. Used for debugging.
func (t *Table) Index(key []byte) uint32 {
	if t.destroyed {
		return 0
	}
	return t.index(key, t.arraySize)
}

// Resize rebuilds the bucket array with newSize buckets. It's an expensive operation, but it makes an overfull table
// faster when expanded or saves memory when shrunk.
func (t *Table) Resize(newSize uint32) error {
	if t.destroyed {
		return ErrDestroyed
	}
	if newSize == 0 {
		return fmt.Errorf("resize to zero buckets: %w", ErrInvalidArgument)
	}
	return t.rebuild(newSize, "manual")
}

// Rehash relinks all entries under the current seed, keeping the bucket array size. Call it after SetSeed to make
// keys inserted under the old seed reachable again.
func (t *Table) Rehash() error {
	if t.destroyed {
		return ErrDestroyed
	}
	return t.rebuild(t.arraySize, "rehash")
}

// Destroy releases all entries and the bucket array. The table must not be used afterwards.
func (t *Table) Destroy() {
	if t.destroyed {
		return
	}
	releaseAll(t.buckets)
	t.buckets = nil
	t.arraySize = 0
	t.keyCount = 0
	t.collisions = 0
	t.loadFactor = 0
	t.destroyed = true
	t.logger.Debug("table destroyed")
}

// Sum32 returns the 32-bit digest of key the table uses for indexing.
func (t *Table) Sum32(key []byte) uint32 {
	return t.family.X86_32.Sum32(key, t.seed())
}

// Sum128x86 returns the 128-bit digest of key computed by the variant for 32-bit targets.
func (t *Table) Sum128x86(key []byte) [16]byte {
	return t.family.X86_128.Sum128(key, t.seed())
}

// Sum128x64 returns the 128-bit digest of key computed by the variant for 64-bit targets.
func (t *Table) Sum128x64(key []byte) [16]byte {
	return t.family.X64_128.Sum128(key, t.seed())
}
