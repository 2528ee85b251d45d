package chain

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
)

func (t *Table) seed() uint32 {
	if t.hasSeed {
		return t.seedOverride
	}
	return globalSeed.Load()
}

func (t *Table) index(key []byte, size uint32) uint32 {
	return t.family.X86_32.Sum32(key, t.seed()) % size
}

// checkEntry validates a key-value pair for insertion against the constant size contracts.
func (t *Table) checkEntry(key, value []byte) error {
	if len(key) == 0 {
		return fmt.Errorf("empty key: %w", ErrInvalidArgument)
	}
	if t.flags&FlagKeyConst != 0 && t.keySize >= 0 && len(key) != t.keySize {
		return fmt.Errorf("key length %d, want %d: %w", len(key), t.keySize, ErrInvalidArgument)
	}
	if t.flags&FlagValueConst != 0 && t.valueSize >= 0 && len(value) != t.valueSize {
		return fmt.Errorf("value length %d, want %d: %w", len(value), t.valueSize, ErrInvalidArgument)
	}
	return nil
}

// keyFits reports whether the key may be in the table at all.
func (t *Table) keyFits(key []byte) bool {
	if t.destroyed || len(key) == 0 {
		return false
	}
	return t.flags&FlagKeyConst == 0 || t.keySize < 0 || len(key) == t.keySize
}

func (t *Table) lookup(key []byte) *Entry {
	if !t.keyFits(key) {
		return nil
	}
	_, match := findEntry(t.buckets[t.index(key, t.arraySize)], key)
	return match
}

// link appends a new entry after the chain tail (nil for an empty bucket) and updates counters. Only an insertion
// into a non-empty bucket may grow the table.
func (t *Table) link(idx uint32, tail, e *Entry) error {
	e.linked = true
	t.keyCount++
	if t.keySize < 0 && t.flags&FlagKeyConst != 0 {
		t.keySize = len(e.key)
	}
	if t.valueSize < 0 && t.flags&FlagValueConst != 0 {
		t.valueSize = len(e.value)
	}
	if tail == nil {
		t.buckets[idx] = e
		return nil
	}
	tail.next = e
	t.collisions++
	t.updateLoadFactor()
	return t.autoresize()
}

func (t *Table) updateLoadFactor() {
	if t.arraySize == 0 {
		t.loadFactor = 0
		return
	}
	t.loadFactor = float64(t.collisions) / float64(t.arraySize)
}

func (t *Table) autoresize() error {
	if t.flags&FlagNoAutoresize != 0 || t.loadFactor <= t.maxLoadFactor {
		return nil
	}
	newSize := min(uint64(t.arraySize)*uint64(t.growthFactor), MaxArraySize)
	if newSize == uint64(t.arraySize) {
		t.logger.Warn("table is at max size, autoresize skipped",
			zap.Uint32("array_size", t.arraySize),
			zap.Float64("load_factor", t.loadFactor),
		)
		return nil
	}
	return t.rebuild(uint32(newSize), "autoresize")
}

// rebuild relinks all entries into a new bucket array of newSize. Collisions are counted anew for the new layout.
func (t *Table) rebuild(newSize uint32, reason string) error {
	buckets, err := allocBuckets(newSize)
	if err != nil {
		return fmt.Errorf("%s: %w", reason, err)
	}
	oldSize, oldLoadFactor := t.arraySize, t.loadFactor

	var collisions uint32
	for _, head := range t.buckets {
		for e := head; e != nil; {
			next := e.next
			e.next = nil
			if relinkEntry(buckets, t.index(e.key, newSize), e) {
				collisions++
			}
			e = next
		}
	}

	t.buckets = buckets
	t.arraySize = newSize
	t.collisions = collisions
	t.updateLoadFactor()
	t.resizes++

	t.logger.Debug("table resized",
		zap.String("reason", reason),
		zap.Uint32("from", oldSize),
		zap.Uint32("to", newSize),
		zap.Float64("load_factor_before", oldLoadFactor),
		zap.Float64("load_factor", t.loadFactor),
		zap.Int("keys", t.keyCount),
	)
	return nil
}

func allocBuckets(n uint32) (buckets []*Entry, err error) {
	if n > MaxArraySize {
		return nil, fmt.Errorf("%d buckets exceed the limit of %d: %w", n, MaxArraySize, ErrOutOfMemory)
	}
	defer func() {
		if r := recover(); r != nil {
			buckets = nil
			err = fmt.Errorf("allocate %d buckets: %v: %w", n, r, ErrOutOfMemory)
		}
	}()
	return make([]*Entry, n), nil
}

// findEntry walks a chain and returns the entry with the given key and its predecessor. If there is no such key,
// it returns the chain tail and nil.
func findEntry(head *Entry, key []byte) (prev, match *Entry) {
	for e := head; e != nil; e = e.next {
		if len(e.key) == len(key) && slices.Equal(e.key, key) {
			return prev, e
		}
		prev = e
	}
	return prev, nil
}

// relinkEntry appends an entry to the end of a chain. Returns true if the bucket was not empty.
func relinkEntry(buckets []*Entry, idx uint32, e *Entry) bool {
	if buckets[idx] == nil {
		buckets[idx] = e
		return false
	}
	tail := buckets[idx]
	for tail.next != nil {
		tail = tail.next
	}
	tail.next = e
	return true
}

func unlinkEntry(buckets []*Entry, idx uint32, prev, e *Entry) {
	if prev == nil {
		buckets[idx] = e.next
	} else {
		prev.next = e.next
	}
}

// replaceEntry puts e in place of old in the chain and releases old.
func replaceEntry(buckets []*Entry, idx uint32, prev, old, e *Entry) {
	e.next = old.next
	e.linked = true
	if prev == nil {
		buckets[idx] = e
	} else {
		prev.next = e
	}
	old.release()
}

func releaseAll(buckets []*Entry) {
	for i, head := range buckets {
		for e := head; e != nil; {
			next := e.next
			e.release()
			e = next
		}
		buckets[i] = nil
	}
}
