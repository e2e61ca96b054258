// Package hue summarises the colour of an image region, so pieces can be
// sorted or grouped by colour in a tray.
package hue

import (
	"image"
	"image/color"
	"math"
)

// HSL is hue in degrees [0,360), saturation and lightness in [0,1].
type HSL struct {
	H, S, L float64
}

func FromColor(c color.Color) HSL {
	r16, g16, b16, _ := c.RGBA()
	r := float64(r16) / 0xFFFF
	g := float64(g16) / 0xFFFF
	b := float64(b16) / 0xFFFF

	hi := math.Max(r, math.Max(g, b))
	lo := math.Min(r, math.Min(g, b))
	delta := hi - lo

	out := HSL{L: (hi + lo) / 2}
	if delta == 0 {
		return out
	}

	switch hi {
	case r:
		out.H = math.Mod((g-b)/delta, 6)
	case g:
		out.H = (b-r)/delta + 2
	default:
		out.H = (r-g)/delta + 4
	}
	out.H *= 60
	if out.H < 0 {
		out.H += 360
	}

	if out.L > 0.5 {
		out.S = delta / (2 - hi - lo)
	} else {
		out.S = delta / (hi + lo)
	}
	return out
}

// Summary averages the colour of a region. When
// Saturation is near zero the hue means little.
type Summary struct {
	Hue        float64 `json:"hue" yaml:"hue"`
	Saturation float64 `json:"saturation" yaml:"saturation"`
	Lightness  float64 `json:"lightness" yaml:"lightness"`
}

// Summarize averages hue as a unit vector so reds on both sides of 0 degrees
// do not cancel out to cyan. Fully transparent pixels are skipped.
func Summarize(img image.Image, r image.Rectangle) Summary {
	r = r.Intersect(img.Bounds())

	var sumX, sumY, sumS, sumL float64
	count := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := img.At(x, y)
			if _, _, _, a := c.RGBA(); a == 0 {
				continue
			}
			hsl := FromColor(c)
			rad := hsl.H * math.Pi / 180
			sumX += math.Cos(rad)
			sumY += math.Sin(rad)
			sumS += hsl.S
			sumL += hsl.L
			count++
		}
	}
	if count == 0 {
		return Summary{}
	}

	angle := math.Atan2(sumY, sumX) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	n := float64(count)
	return Summary{Hue: angle, Saturation: sumS / n, Lightness: sumL / n}
}
