package bruteforce

import (
	"bytes"
	"testing"

	"filippo.io/edwards25519"
)

func TestAdvanceInteger_Wraparound(t *testing.T) {
	t.Run("uint8", func(t *testing.T) {
		for _, start := range []uint8{0, 1, 127, 200, 255} {
			s := start
			for i := 0; i < 1<<8; i++ {
				AdvanceInteger(&s)
			}
			if s != start {
				t.Fatalf("after 2^8 advances from %d got %d", start, s)
			}
		}
	})

	t.Run("int8", func(t *testing.T) {
		s := int8(127)
		AdvanceInteger(&s)
		if s != -128 {
			t.Fatalf("127 advanced to %d; want -128", s)
		}
		for i := 1; i < 1<<8; i++ {
			AdvanceInteger(&s)
		}
		if s != 127 {
			t.Fatalf("after 2^8 advances got %d; want 127", s)
		}
	})

	t.Run("uint16", func(t *testing.T) {
		s := uint16(4242)
		for i := 0; i < 1<<16; i++ {
			AdvanceInteger(&s)
		}
		if s != 4242 {
			t.Fatalf("after 2^16 advances got %d; want 4242", s)
		}
	})

	t.Run("uint64 max wraps to zero", func(t *testing.T) {
		s := ^uint64(0)
		AdvanceInteger(&s)
		if s != 0 {
			t.Fatalf("max uint64 advanced to %d; want 0", s)
		}
	})
}

func TestStartInteger_Uint8TwoThreads(t *testing.T) {
	if got := StartInteger[uint8](0, 2); got != 0 {
		t.Fatalf("thread 0 of 2 starts at %d; want 0", got)
	}
	if got := StartInteger[uint8](1, 2); got != 128 {
		t.Fatalf("thread 1 of 2 starts at %d; want 128", got)
	}
}

func TestStartInteger_SingleThreadStartsAtZero(t *testing.T) {
	if got := StartInteger[uint64](0, 1); got != 0 {
		t.Fatalf("uint64 single thread starts at %d; want 0", got)
	}
	if got := StartInteger[int32](0, 1); got != 0 {
		t.Fatalf("int32 single thread starts at %d; want 0", got)
	}
}

func TestStartInteger_Signed_ReinterpretsUnsignedSplit(t *testing.T) {
	if got := StartInteger[int8](1, 2); got != -128 {
		t.Fatalf("int8 thread 1 of 2 starts at %d; want -128", got)
	}
	if got, want := StartInteger[int16](3, 4), int16(-16384); got != want {
		t.Fatalf("int16 thread 3 of 4 starts at %d; want %d", got, want)
	}
}

func TestStartInteger_OutOfRangePartition(t *testing.T) {
	// thread does not fit the type
	if got := StartInteger[uint8](300, 400); got != 0 {
		t.Fatalf("thread out of range starts at %d; want 0", got)
	}
	// thread fits, count does not
	if got := StartInteger[uint8](7, 1000); got != 7 {
		t.Fatalf("count out of range starts at %d; want 7", got)
	}
}

func TestStartInteger_PartitionsAreOrderedAndDisjoint(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 7, 8, 16, 100, 255} {
		var prev uint8
		for i := 0; i < n; i++ {
			got := StartInteger[uint8](i, n)
			if i > 0 && got <= prev {
				t.Fatalf("n=%d: thread %d starts at %d, not after thread %d at %d", n, i, got, i-1, prev)
			}
			prev = got
		}
		// the last partition holds at least as many values as the others
		if n > 1 {
			step := int(StartInteger[uint8](1, n))
			last := 256 - int(StartInteger[uint8](n-1, n))
			if last < step {
				t.Fatalf("n=%d: last partition has %d values, fewer than step %d", n, last, step)
			}
		}
	}

	for _, n := range []int{2, 3, 6, 64, 1000} {
		var prev uint64
		for i := 0; i < n; i++ {
			got := StartInteger[uint64](i, n)
			if i > 0 && got <= prev {
				t.Fatalf("uint64 n=%d: thread %d start %d not after %d", n, i, got, prev)
			}
			prev = got
		}
	}
}

func TestAdvanceBytes_Carry(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []byte
	}{
		{"last byte", []byte{0, 0, 1}, []byte{0, 0, 2}},
		{"single carry", []byte{0, 0, 0xff}, []byte{0, 1, 0}},
		{"carry across all but first", []byte{7, 0xff, 0xff}, []byte{8, 0, 0}},
		{"full wrap", []byte{0xff, 0xff, 0xff}, []byte{0, 0, 0}},
		{"empty", []byte{}, []byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			AdvanceBytes(tt.in)
			if !bytes.Equal(tt.in, tt.want) {
				t.Fatalf("got %x; want %x", tt.in, tt.want)
			}
		})
	}
}

func TestBytes_FullWraparound(t *testing.T) {
	for n := 1; n <= 3; n++ {
		start := make(Bytes, n)
		start[0] = 0x5a
		s := start.Clone()
		total := 1 << (8 * n)
		for i := 0; i < total; i++ {
			s.Advance()
			if i < total-1 && bytes.Equal(s, start) {
				t.Fatalf("n=%d: revisited start after %d advances", n, i+1)
			}
		}
		if !bytes.Equal(s, start) {
			t.Fatalf("n=%d: after %d advances got %x; want %x", n, total, s, start)
		}
	}
}

func TestStartBytes_Layout(t *testing.T) {
	got := StartBytes(6)(1, 2)
	want := Bytes{0x80, 0, 0, 0, 0, 0}
	if !bytes.Equal(got, want) {
		t.Fatalf("6-byte thread 1 of 2 = %x; want %x", got, want)
	}

	got = StartBytes(2)(1, 2)
	want = Bytes{0x80, 0}
	if !bytes.Equal(got, want) {
		t.Fatalf("2-byte thread 1 of 2 = %x; want %x", got, want)
	}

	got = StartBytes(4)(3, 4)
	want = Bytes{0xc0, 0, 0, 0}
	if !bytes.Equal(got, want) {
		t.Fatalf("4-byte thread 3 of 4 = %x; want %x", got, want)
	}

	if got := StartBytes(0)(0, 1); len(got) != 0 {
		t.Fatalf("0-byte start has length %d", len(got))
	}
}

func TestBytesSpace_AdvanceDelegates(t *testing.T) {
	space := BytesSpace(2)
	s := space.Start(0, 1)
	space.Advance(&s)
	if !bytes.Equal(s, Bytes{0, 1}) {
		t.Fatalf("advanced start = %x; want 0001", s)
	}
}

func TestScalar_RandomStartAndAdvance(t *testing.T) {
	a := StartScalar(0, 2)
	b := StartScalar(0, 2)
	if a.Equal(&b) {
		t.Fatalf("two random scalars are equal: %x", a.Bytes())
	}

	c := a
	c.Advance()
	if c.Equal(&a) {
		t.Fatalf("advance did not change the scalar")
	}

	// a + 1 encodes as a with its low byte incremented unless it carries
	ab, cb := a.Bytes(), c.Bytes()
	if ab[0] != 0xff && cb[0] != ab[0]+1 {
		t.Fatalf("low byte %x advanced to %x", ab[0], cb[0])
	}
}

func TestScalar_AdvanceStepsPublicPointByBasePoint(t *testing.T) {
	s := StartScalar(0, 1)
	before := new(edwards25519.Point).ScalarBaseMult(s.Edwards())

	s.Advance()
	after := new(edwards25519.Point).ScalarBaseMult(s.Edwards())

	want := new(edwards25519.Point).Add(before, edwards25519.NewGeneratorPoint())
	if after.Equal(want) != 1 {
		t.Fatalf("public point of s+1 is not P+B")
	}

	// Edwards exposes the state itself, not a copy
	s.Edwards().Set(edwards25519.NewScalar())
	if !bytes.Equal(s.Bytes(), make([]byte, 32)) {
		t.Fatalf("scalar not zeroed through Edwards: %x", s.Bytes())
	}
}
