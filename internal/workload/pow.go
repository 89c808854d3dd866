// Package workload holds the search workloads served by the bruteforce command.
package workload

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/ygrebnov/bruteforce"
	"github.com/ygrebnov/bruteforce/adaptors"
)

// ProofOfWork searches a uint64 nonce whose BLAKE2b-512 digest, taken over the
// little-endian nonce, starts with Difficulty zero bytes.
type ProofOfWork struct {
	Difficulty int
}

func NewProofOfWork(difficulty int) (ProofOfWork, error) {
	if difficulty < 0 || difficulty > blake2b.Size {
		return ProofOfWork{}, fmt.Errorf("%w: difficulty %d out of range [0, %d]",
			bruteforce.ErrInvalidConfig, difficulty, blake2b.Size)
	}
	return ProofOfWork{Difficulty: difficulty}, nil
}

func (p ProofOfWork) Space() bruteforce.Space[uint64] {
	return bruteforce.IntegerSpace[uint64]()
}

// Check advances the nonce before hashing and yields the nonce that satisfied the target.
func (p ProofOfWork) Check() bruteforce.Check[uint64, uint64] {
	return adaptors.OutputInput(adaptors.AutoAdvance(bruteforce.AdvanceInteger[uint64], p.valid))
}

func (p ProofOfWork) valid(nonce *uint64) bool { return p.Verify(*nonce) }

// Verify reports whether nonce meets the difficulty.
func (p ProofOfWork) Verify(nonce uint64) bool {
	digest := Digest(nonce)
	for _, b := range digest[:p.Difficulty] {
		if b != 0 {
			return false
		}
	}
	return true
}

// Digest returns the BLAKE2b-512 digest of the little-endian nonce.
func Digest(nonce uint64) [blake2b.Size]byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], nonce)
	return blake2b.Sum512(buf[:])
}
