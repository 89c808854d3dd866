package bruteforce

import "encoding/binary"

// Bytes is a fixed-length byte string state. Its length is chosen by StartBytes
// and never changes afterwards.
type Bytes []byte

// BytesSpace returns the state space of n-byte strings.
func BytesSpace(n int) Space[Bytes] {
	return Space[Bytes]{Start: StartBytes(n), Advance: AdvanceSelf[Bytes]()}
}

// StartBytes partitions n-byte strings by their leading bytes: the first four bytes
// (or the single first byte when n < 4) carry the partition offset, big-endian,
// and the trailing bytes start at zero.
func StartBytes(n int) Start[Bytes] {
	return func(thread, threadCount int) Bytes {
		b := make(Bytes, n)
		switch {
		case n >= 4:
			binary.BigEndian.PutUint32(b, StartInteger[uint32](thread, threadCount))
		case n > 0:
			b[0] = StartInteger[uint8](thread, threadCount)
		}
		return b
	}
}

// Advance increments b as a big-endian number. All 0xff wraps to all zero.
func (b *Bytes) Advance() { AdvanceBytes(*b) }

// AdvanceBytes increments b in place as a big-endian number, carrying from the last byte
// towards the first. Use it with arrays through a slice expression: AdvanceBytes(a[:]).
func AdvanceBytes(b []byte) {
	for i := len(b) - 1; i >= 0; i-- {
		b[i]++
		if b[i] != 0 {
			return
		}
	}
}

// Clone returns an independent copy of b.
func (b Bytes) Clone() Bytes {
	if b == nil {
		return nil
	}
	c := make(Bytes, len(b))
	copy(c, b)
	return c
}
