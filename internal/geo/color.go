package geo

import (
	"fmt"
	"math"
)

// ColorFromKey hashes a canonical key to a reproducible "#rrggbb" color.
// FNV-1a over the key bytes picks a hue; saturation and lightness are fixed
// so neighboring polities stay legible on the map. Pure and stable across
// runs and platforms. Used only to fill in a missing stored color.
func ColorFromKey(key string) string {
	var hash uint32 = 2166136261
	for i := 0; i < len(key); i++ {
		hash ^= uint32(key[i])
		hash *= 16777619
	}
	hue := float64(hash%360) / 360.0
	r, g, b := hslToRGB(hue, 0.55, 0.62)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func hslToRGB(h, s, l float64) (uint8, uint8, uint8) {
	if s == 0 {
		v := channel(l)
		return v, v, v
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return channel(hueToRGB(p, q, h+1.0/3.0)),
		channel(hueToRGB(p, q, h)),
		channel(hueToRGB(p, q, h-1.0/3.0))
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}

func channel(v float64) uint8 {
	return uint8(math.Round(v * 255))
}
