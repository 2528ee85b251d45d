package chain

import (
	"fmt"
	"slices"
)

// Entry is a chain node owning a copy of a key and a value.
type Entry struct {
	key    []byte
	value  []byte
	next   *Entry
	linked bool
}

// NewEntry makes an Entry with copies of key and value, ready for Table.InsertEntry.
func NewEntry(key, value []byte) (*Entry, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("empty key: %w", ErrInvalidArgument)
	}
	return newEntry(key, value), nil
}

func newEntry(key, value []byte) *Entry {
	return &Entry{
		key:   slices.Clone(key),
		value: slices.Clone(value),
	}
}

// Key returns the entry key. The slice must not be modified.
func (e *Entry) Key() []byte {
	return e.key
}

// Value returns the entry value. The slice must not be modified.
func (e *Entry) Value() []byte {
	return e.value
}

// setValue replaces the value. Same-length values are copied over the old buffer when reuse is true.
func (e *Entry) setValue(value []byte, reuse bool) {
	if reuse && len(e.value) == len(value) {
		copy(e.value, value)
		return
	}
	e.value = slices.Clone(value)
}

func (e *Entry) release() {
	e.key = nil
	e.value = nil
	e.next = nil
	e.linked = false
}
