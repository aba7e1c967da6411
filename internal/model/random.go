package model

// Random is a source of uniform floats in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type Random interface {
	Float64() float64
}

// RandRange returns a uniform value in [lo, hi).
func RandRange(rng Random, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// RandIndex returns a uniform index in [0, n). n must be positive.
func RandIndex(rng Random, n int) int {
	i := int(rng.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
