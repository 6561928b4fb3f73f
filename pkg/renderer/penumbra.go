package renderer

import "math"

// PenumbraRadius returns the neighbourhood size, in sub-samples, searched for
// a lit neighbour of the sub-sample at idx. It grows with how deep the point
// sits in shadow and with the light's projected size, shrinks with distance
// from the camera, and is capped at maxRadius.
func PenumbraRadius(b *FrameBuffers, idx int, maxRadius float64) float64 {
	depth := b.Depth[idx]
	if depth <= 0 {
		return 0
	}
	r := math.Abs((1 - b.Occlusion[idx]) * b.LightSize[idx] / depth)
	return math.Min(r, maxRadius)
}

// ShadowStrength estimates how deep inside a soft shadow the sub-sample at
// (sx, sy) lies: 0 is fully lit, 1 is the shadow core. It is the distance to
// the nearest unoccluded sub-sample normalised by half the penumbra radius.
func ShadowStrength(b *FrameBuffers, sx, sy int, maxRadius float64) float64 {
	idx := b.Index(sx, sy)
	if b.Alignment[idx] < 0 {
		return 1
	}
	if b.Occlusion[idx] >= 1 {
		return 0
	}

	half := PenumbraRadius(b, idx, maxRadius) / 2
	if half <= 0 {
		return 1
	}

	h := int(math.Floor(half))
	subW, subH := b.SubWidth(), b.SubHeight()
	nearest := math.Inf(1)
	for y := max(0, sy-h); y <= min(subH-1, sy+h); y++ {
		for x := max(0, sx-h); x <= min(subW-1, sx+h); x++ {
			if b.Occlusion[b.Index(x, y)] < 1 {
				continue
			}
			dx, dy := float64(x-sx), float64(y-sy)
			nearest = math.Min(nearest, math.Sqrt(dx*dx+dy*dy))
		}
	}

	if math.IsInf(nearest, 1) {
		return 1
	}
	return math.Min(1, nearest/half)
}
