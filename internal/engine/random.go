package engine

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"
)

// Rand is the randomness source for the trigger draw and sticker pick.
type Rand interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n). n must be positive.
	IntN(n int) int
}

// CryptoRand draws from crypto/rand. It is safe for concurrent use.
type CryptoRand struct{}

// Float64 returns a uniform value in [0, 1) built from 53 random bits.
func (CryptoRand) Float64() float64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("engine: crypto/rand failed: " + err.Error())
	}
	return float64(binary.BigEndian.Uint64(b[:])>>11) / (1 << 53)
}

// IntN returns a uniform value in [0, n). It panics if n <= 0.
func (CryptoRand) IntN(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("engine: crypto/rand failed: " + err.Error())
	}
	return int(v.Int64())
}
