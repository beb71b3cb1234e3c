package io

import (
	"github.com/ezrec/bitvec/binary"
)

// RING_DEFAULT_CAPACITY is the default capacity in words for a new ring.
const RING_DEFAULT_CAPACITY = 4096

// Ring is an in-memory queue of words with separate read and write
// positions.
type Ring struct {
	Capacity int

	ReadIndex int
	Data      []*binary.Binary
}

var _ Port = (*Ring)(nil)

// Rewind resets the ring's read position to the start.
func (ring *Ring) Rewind() {
	if ring.Capacity == 0 {
		ring.Capacity = RING_DEFAULT_CAPACITY
	}

	ring.ReadIndex = 0
}

// Receive returns the next unread word, resized to width bits.
func (ring *Ring) Receive(width int) (value *binary.Binary, err error) {
	if ring == nil || ring.ReadIndex >= len(ring.Data) {
		err = ErrPortEmpty
		return
	}

	value = ring.Data[ring.ReadIndex].Cast(binary.Unsigned).Resize(width)
	ring.ReadIndex++

	return
}

// Send appends a copy of a word to the ring.
// Returns ErrPortFull if the ring has reached capacity.
func (ring *Ring) Send(value *binary.Binary) (err error) {
	if ring == nil {
		err = ErrPortFull
		return
	}

	if ring.Capacity == 0 {
		ring.Capacity = RING_DEFAULT_CAPACITY
	}

	if len(ring.Data) >= ring.Capacity {
		err = ErrPortFull
		return
	}

	ring.Data = append(ring.Data, value.Clone())

	return
}

// Values returns the integer value of every word in the ring.
func (ring *Ring) Values() (values []int64) {
	for _, word := range ring.Data {
		value, _ := word.Int64()
		values = append(values, value)
	}
	return
}
