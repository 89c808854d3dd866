package workload

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"

	"github.com/ygrebnov/bruteforce"
)

var quiet = bruteforce.WithLogger(slog.New(slog.DiscardHandler))

func TestNewProofOfWork_RejectsDifficulty(t *testing.T) {
	for _, d := range []int{-1, 65} {
		_, err := NewProofOfWork(d)
		require.ErrorIs(t, err, bruteforce.ErrInvalidConfig, "difficulty %d", d)
	}

	p, err := NewProofOfWork(64)
	require.NoError(t, err)
	require.Equal(t, 64, p.Difficulty)
}

func TestProofOfWork_ZeroDifficultyAcceptsAnything(t *testing.T) {
	p, err := NewProofOfWork(0)
	require.NoError(t, err)
	require.True(t, p.Verify(0))
	require.True(t, p.Verify(12345))
}

func TestProofOfWork_Search(t *testing.T) {
	p, err := NewProofOfWork(1)
	require.NoError(t, err)

	space := p.Space()
	nonce, err := bruteforce.Run(context.Background(), space.Start, p.Check(),
		bruteforce.WithThreads(2), quiet)

	require.NoError(t, err)
	require.True(t, p.Verify(nonce))
	require.Zero(t, Digest(nonce)[0])
}

func TestChainState_ClosesSegmentsOnDistinguishedPoints(t *testing.T) {
	s := ChainState{segmentStart: Point{1}, current: Point{1}}

	_, closed := s.step(Point{0, 1, 2, 3, 4})
	require.False(t, closed)

	start, closed := s.step(Point{0, 0, 9, 9, 9})
	require.True(t, closed)
	require.Equal(t, Point{1}, start)
	require.Equal(t, Point{0, 0, 9, 9, 9}, s.segmentStart)
	require.Equal(t, s.segmentStart, s.current)
}

func TestStartChain_Partitions(t *testing.T) {
	require.Equal(t, Point{}, StartChain(0, 2).current)
	require.Equal(t, Point{0x80}, StartChain(1, 2).current)
}

// closingPoint returns a point whose ChainHash is distinguished.
func closingPoint(t *testing.T) Point {
	t.Helper()
	var p Point
	for i := 0; i < 1<<24; i++ {
		if distinguished(ChainHash(p)) {
			return p
		}
		bruteforce.AdvanceBytes(p[:])
	}
	t.Fatal("no closing point found")
	return p
}

func TestChainCollision_PublishesSegments(t *testing.T) {
	c := NewChainCollision()
	p := closingPoint(t)

	_, ok := c.Check(&ChainState{segmentStart: Point{1}, current: p})
	require.False(t, ok)
	require.Equal(t, 1, c.Segments())

	// the same segment reaching the same end again is not a collision
	_, ok = c.Check(&ChainState{segmentStart: Point{1}, current: p})
	require.False(t, ok)

	pair, ok := c.Check(&ChainState{segmentStart: Point{2}, current: p})
	require.True(t, ok)
	require.Equal(t, ChainPair{First: Point{1}, Second: Point{2}}, pair)
	require.Equal(t, 3, c.Segments())
}

func TestChainCollision_NoPublishMidSegment(t *testing.T) {
	c := NewChainCollision()
	s := ChainState{segmentStart: Point{7}, current: Point{7}}
	for distinguished(ChainHash(s.current)) {
		s.current[4]++
	}

	_, ok := c.Check(&s)
	require.False(t, ok)
	require.Zero(t, c.Segments())
	require.Equal(t, Point{7}, s.segmentStart)
}

func TestFindCollision_MergingSegments(t *testing.T) {
	if testing.Short() {
		t.Skip("walks full chain segments")
	}
	// segments starting on the same chain share a path and yield nothing
	p := Point{3, 1, 4, 1, 5}
	_, _, _, ok := FindCollision(ChainPair{First: p, Second: p})
	require.False(t, ok)
}

func TestChainCollision_Search(t *testing.T) {
	if testing.Short() {
		t.Skip("collision search takes seconds")
	}

	c := NewChainCollision()
	pair, found, err := bruteforce.RunWithTimeout(context.Background(), time.Minute,
		StartChain, c.Check, bruteforce.WithThreads(4), quiet)
	require.NoError(t, err)
	require.True(t, found, "no collision within the timeout")
	require.NotEqual(t, pair.First, pair.Second)
	require.Positive(t, c.Segments())

	a, b, out, ok := FindCollision(pair)
	if !ok {
		// one segment started on the other's chain; nothing to extract
		t.Skip("segments share a path")
	}
	require.NotEqual(t, a, b)
	require.Equal(t, out, ChainHash(a))
	require.Equal(t, out, ChainHash(b))
}

func TestChainHash_MatchesTruncatedBlake2b(t *testing.T) {
	in := Point{1, 2, 3, 4, 5}
	h, err := blake2b.New(ChainWidth, nil)
	require.NoError(t, err)
	h.Write(in[:])

	want := h.Sum(nil)
	for i := 0; i < 3; i++ {
		got := ChainHash(in)
		require.Equal(t, want, got[:])
	}
	require.NotEqual(t, ChainHash(in), ChainHash(Point{1, 2, 3, 4, 6}))
}
