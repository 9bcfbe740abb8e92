package crypto

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
	"sync"
)

// RandSource yields uniform integers in [0, n).
type RandSource interface {
	IntN(n int) (int, error)
}

// CryptoSource draws from crypto/rand. It is safe for concurrent use.
type CryptoSource struct{}

// IntN picks a uniform integer in [0, n) using crypto/rand.
func (CryptoSource) IntN(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// MathSource is a seeded, non-cryptographic source. Identical seeds produce
// identical sequences.
type MathSource struct {
	mu  sync.Mutex
	rnd *mrand.Rand
}

// NewMathSource creates a MathSource seeded with seed.
func NewMathSource(seed uint64) *MathSource {
	return &MathSource{rnd: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// IntN picks a uniform integer in [0, n). It never fails.
func (s *MathSource) IntN(n int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.IntN(n), nil
}
