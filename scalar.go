package bruteforce

import (
	"crypto/rand"

	"filippo.io/edwards25519"
)

// Scalar is a state over the edwards25519 scalar field. The field has no useful
// partitioning, so every worker starts from an independent uniformly random scalar;
// collisions between workers are improbable enough to be ignored.
type Scalar struct {
	s edwards25519.Scalar
}

var scalarOne = func() *edwards25519.Scalar {
	b := make([]byte, 32)
	b[0] = 1
	s, err := edwards25519.NewScalar().SetCanonicalBytes(b)
	if err != nil {
		panic(err)
	}
	return s
}()

// ScalarSpace returns the randomly started edwards25519 scalar space.
func ScalarSpace() Space[Scalar] {
	return Space[Scalar]{Start: StartScalar, Advance: AdvanceSelf[Scalar]()}
}

// StartScalar ignores the partition and returns a random scalar.
// It panics if the system random source fails; the worker reports that as a PanicError.
func StartScalar(_, _ int) Scalar {
	var wide [64]byte
	if _, err := rand.Read(wide[:]); err != nil {
		panic(err)
	}
	var s Scalar
	if _, err := s.s.SetUniformBytes(wide[:]); err != nil {
		panic(err)
	}
	return s
}

// Advance adds one modulo the group order.
func (s *Scalar) Advance() { s.s.Add(&s.s, scalarOne) }

// Bytes returns the canonical 32-byte little-endian encoding.
func (s *Scalar) Bytes() []byte { return s.s.Bytes() }

// Equal reports whether s and t hold the same scalar.
func (s *Scalar) Equal(t *Scalar) bool { return s.s.Equal(&t.s) == 1 }

// Edwards returns the underlying edwards25519 scalar, for example to derive the public
// point of a key search with Point.ScalarBaseMult. Writes through it change s.
func (s *Scalar) Edwards() *edwards25519.Scalar { return &s.s }
