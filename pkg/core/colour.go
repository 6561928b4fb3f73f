package core

import "math"

// alphaOpaque is the fixed alpha channel of every packed pixel
const alphaOpaque uint32 = 0xFF << 24

// PackRGB packs 8-bit channels into a 0xAARRGGBB pixel with an opaque alpha.
// Channels outside [0, 255] are clamped.
func PackRGB(r, g, b int) uint32 {
	return alphaOpaque |
		uint32(clampChannel(r))<<16 |
		uint32(clampChannel(g))<<8 |
		uint32(clampChannel(b))
}

// PackVec3 rounds a colour expressed in [0, 255] per channel and packs it
func PackVec3(c Vec3) uint32 {
	return PackRGB(int(math.Round(c.X)), int(math.Round(c.Y)), int(math.Round(c.Z)))
}

// UnpackRGB splits a packed pixel into its 8-bit channels
func UnpackRGB(pixel uint32) (r, g, b int) {
	return int(pixel>>16) & 0xFF, int(pixel>>8) & 0xFF, int(pixel) & 0xFF
}

func clampChannel(c int) int {
	return max(0, min(255, c))
}
