package restir

import "math/rand/v2"

// Stage salts keep the random streams of different stages independent.
const (
	SaltCandidates uint32 = 0x1456 + iota
	SaltTemporal
	SaltShade
	SaltIndirect
	SaltSpatial
)

// RNG is a per-pixel random stream. Streams are fully determined by the
// pixel, the frame index and a salt so results do not depend on how pixels
// are distributed across workers.
type RNG struct {
	pcg rand.PCG
}

// Create the random stream for pixel (x, y) of frame frameIndex.
func NewRNG(x, y, frameIndex, salt uint32) RNG {
	var rng RNG
	rng.pcg.Seed(
		mix64(uint64(x)<<32|uint64(y)),
		mix64(uint64(frameIndex)<<32|uint64(salt)),
	)
	return rng
}

// Get a uniform float32 in [0, 1).
func (r *RNG) Float32() float32 {
	return float32(r.pcg.Uint64()>>40) / (1 << 24)
}

// splitmix64 finalizer; spreads nearby seeds over the whole state space.
func mix64(v uint64) uint64 {
	v ^= v >> 30
	v *= 0xbf58476d1ce4e5b9
	v ^= v >> 27
	v *= 0x94d049bb133111eb
	v ^= v >> 31
	return v
}
