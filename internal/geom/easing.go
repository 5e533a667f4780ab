package geom

import "math"

// SineInFactor eases in: slow start, fast finish.
func SineInFactor(t float64) float64 {
	return 1 - math.Cos(math.Pi/2*t)
}

// SineOutFactor eases out: fast start, slow finish.
func SineOutFactor(t float64) float64 {
	return 1 - SineInFactor(1-t)
}

// sineInOutFactor eases in over the first half and out over the second.
func sineInOutFactor(t float64) float64 {
	if t < 0.5 {
		return SineInFactor(t*2) * 0.5
	}
	return 0.5 + SineOutFactor(t*2-1)*0.5
}

// Sine interpolates from a to b with sine in/out easing.
func Sine(a, b, t float64) float64 {
	return a + (b-a)*sineInOutFactor(t)
}

// SineVec is Sine applied to a whole vector.
func SineVec(a, b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Scale(sineInOutFactor(t)))
}
