// Package srgb converts between gamma-encoded sRGB bytes and linear light.
package srgb

import "math"

// toLinear holds ToLinear for every byte.  Pre-computed at init.
var toLinear [256]float64

func init() {
	for i := range toLinear {
		v := float64(i) / 255
		if v <= 0.04045 {
			toLinear[i] = v / 12.92
		} else {
			toLinear[i] = math.Pow((v+0.055)/1.055, 2.4)
		}
	}
}

// ToLinear converts an sRGB channel byte to linear light in [0, 1].
func ToLinear(v uint8) float64 {
	return toLinear[v]
}

// FromLinear converts linear light to an sRGB channel value in [0, 255].
// Input is clamped to [0, 1]; the result is rounded to nearest.
func FromLinear(v float64) int {
	v = math.Max(0, math.Min(1, v))
	if v <= 0.0031308 {
		return int(math.Floor(v*12.92*255 + 0.5))
	}
	return int(math.Floor((math.Pow(v, 1/2.4)*1.055-0.055)*255 + 0.5))
}

// SignPow raises |n| to exp and restores the sign of n.
func SignPow(n, exp float64) float64 {
	return math.Copysign(math.Pow(math.Abs(n), exp), n)
}
