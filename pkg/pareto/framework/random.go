package framework

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Uniform draws a number uniformly distributed in [a, b).
func Uniform(rng RandomGenerator, a, b float64) float64 {
	return Lerp(a, b, rng.Float64())
}

// Clamp limits x to the interval [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
