package gacha

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource yields uniform floats in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// osSource is a rand.Source backed by the operating system's CSPRNG.
type osSource struct{}

func (osSource) Uint64() uint64 {
	var buf [8]byte
	// crypto/rand.Read does not fail on supported platforms
	cryptorand.Read(buf[:])
	return binary.LittleEndian.Uint64(buf[:])
}

// DefaultRNG is unpredictable; the draw command and callers passing nil use it.
func DefaultRNG() RandomSource { return rand.New(osSource{}) }

// NewSeededRNG is stream 0 of seed.
func NewSeededRNG(seed uint64) RandomSource { return NewStreamRNG(seed, 0) }

// NewStreamRNG returns a PCG generator. Simulation workers share a seed and
// take one stream each.
func NewStreamRNG(seed, stream uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, stream))
}
