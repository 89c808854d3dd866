package workload

import (
	"hash"
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/ygrebnov/bruteforce"
	"github.com/ygrebnov/bruteforce/pool"
)

const (
	// ChainWidth is the hash output width, in bytes, of the chains being searched.
	ChainWidth = 5
	// DistinguishedPrefix is the number of leading zero bytes that end a chain segment.
	DistinguishedPrefix = 2
)

// Point is a ChainWidth-byte hash chain element.
type Point [ChainWidth]byte

var hashers = pool.NewDynamic(func() hash.Hash {
	h, err := blake2b.New(ChainWidth, nil)
	if err != nil {
		panic(err)
	}
	return h
})

// ChainHash is the function whose collisions are searched: BLAKE2b truncated to ChainWidth bytes.
// It is safe for concurrent use.
func ChainHash(in Point) Point {
	h := hashers.Get()
	defer hashers.Put(h)

	h.Reset()
	h.Write(in[:])
	var out Point
	h.Sum(out[:0])
	return out
}

func distinguished(p Point) bool {
	for _, b := range p[:DistinguishedPrefix] {
		if b != 0 {
			return false
		}
	}
	return true
}

// ChainState walks a hash chain, remembering where the current segment started.
type ChainState struct {
	segmentStart Point
	current      Point
}

// StartChain starts each worker on the point its partition begins with.
func StartChain(thread, threadCount int) ChainState {
	var p Point
	copy(p[:], bruteforce.StartBytes(ChainWidth)(thread, threadCount))
	return ChainState{segmentStart: p, current: p}
}

// step moves to out. When out is a distinguished point it closes the segment and
// returns the segment's start.
func (s *ChainState) step(out Point) (Point, bool) {
	var closed Point
	ok := false
	if distinguished(out) {
		closed, ok = s.segmentStart, true
		s.segmentStart = out
	}
	s.current = out
	return closed, ok
}

// ChainPair holds the starts of two chain segments ending on the same distinguished point.
type ChainPair struct {
	First, Second Point
}

// ChainCollision is a parallel distinguished-point collision search.
// Workers publish closed segments into a shared table; two different segment starts
// reaching the same distinguished point contain a collision. Use one value per run.
type ChainCollision struct {
	mu     sync.Mutex
	ends   map[Point]Point
	closed int
}

func NewChainCollision() *ChainCollision {
	return &ChainCollision{ends: make(map[Point]Point)}
}

// Check hashes the current point and publishes closed segments.
func (c *ChainCollision) Check(s *ChainState) (ChainPair, bool) {
	out := ChainHash(s.current)
	start, closed := s.step(out)
	if !closed {
		return ChainPair{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed++
	other, seen := c.ends[out]
	c.ends[out] = start
	if seen && other != start {
		return ChainPair{First: other, Second: start}, true
	}
	return ChainPair{}, false
}

// Segments returns the number of chain segments published so far.
func (c *ChainCollision) Segments() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// FindCollision walks both segments of pair and returns two different inputs with
// the same ChainHash output.
func FindCollision(pair ChainPair) (a, b, out Point, ok bool) {
	outToIn := make(map[Point]Point)
	walkSegment(pair.First, func(in, out Point) bool {
		outToIn[out] = in
		return true
	})

	walkSegment(pair.Second, func(in, o Point) bool {
		other, hit := outToIn[o]
		if !hit {
			return true
		}
		if in == other {
			// both segments merged earlier; keep walking is pointless
			return false
		}
		a, b, out, ok = in, other, o, true
		return false
	})
	return a, b, out, ok
}

// walkSegment calls visit for every (input, output) pair of the segment starting at
// start, up to and including the step that produces the next distinguished point.
func walkSegment(start Point, visit func(in, out Point) bool) {
	in := start
	for first := true; first || !distinguished(in); first = false {
		out := ChainHash(in)
		if !visit(in, out) {
			return
		}
		in = out
	}
}
