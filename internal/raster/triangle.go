package raster

import (
	"image"
	"math"
)

// RasterizeTriangle rasterizes a single indexed triangle with texture
// mapping, z-buffer, sRGB color space, and ACES tone mapping. The shade
// scalar is computed by the caller from the triangle's vertex normals, so
// shading is flat per face.
//
// This is the HOT PATH — designed for zero allocation in the inner loop.
func RasterizeTriangle(
	fb *FrameBuffer,
	px, py, pz [3]float64,
	uv [3][2]float32,
	tex *image.NRGBA,
	defaultR, defaultG, defaultB, defaultA uint8,
	shade float64,
	lc *LightConfig,
) {
	x0, y0, z0 := px[0], py[0], pz[0]
	x1, y1, z1 := px[1], py[1], pz[1]
	x2, y2, z2 := px[2], py[2], pz[2]

	hasUV := tex != nil

	// Bounding box
	w, h := fb.Width, fb.Height
	minX := int(math.Min(math.Min(x0, x1), x2))
	maxX := int(math.Max(math.Max(x0, x1), x2)) + 1
	minY := int(math.Min(math.Min(y0, y1), y2))
	maxY := int(math.Max(math.Max(y0, y1), y2)) + 1

	if minX < 0 {
		minX = 0
	}
	if maxX >= w {
		maxX = w - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= h {
		maxY = h - 1
	}
	if minX >= maxX || minY >= maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	// Precompute edge deltas
	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	exposure := lc.Exposure
	invGamma := lc.InvGamma

	// Pixel loop — zero allocations
	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - y2
		rowOff := sy * w
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}

			var cr, cg, cb, ca uint8
			if hasUV {
				u := float32(w0)*uv[0][0] + float32(w1)*uv[1][0] + float32(w2)*uv[2][0]
				v := float32(w0)*uv[0][1] + float32(w1)*uv[1][1] + float32(w2)*uv[2][1]
				cr, cg, cb, ca = SampleBilinear(tex, u, v)
			} else {
				cr, cg, cb, ca = defaultR, defaultG, defaultB, defaultA
			}

			// Skip transparent texels
			if ca < 8 {
				continue
			}
			fb.ZBuf[zIdx] = z

			// sRGB decode → linear (LUT), shade, ACES, re-encode
			sr := srgbToLinear[cr] * shade * exposure
			sg := srgbToLinear[cg] * shade * exposure
			sb := srgbToLinear[cb] * shade * exposure

			fr := math.Pow(ACESTonemap(sr), invGamma)
			fg := math.Pow(ACESTonemap(sg), invGamma)
			fbl := math.Pow(ACESTonemap(sb), invGamma)

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = clamp255(fr * 255)
			fb.Color[pxIdx+1] = clamp255(fg * 255)
			fb.Color[pxIdx+2] = clamp255(fbl * 255)
			fb.Color[pxIdx+3] = ca
		}
	}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
