package raster

import (
	"image"
	"math"

	"obj-cache-renderer/internal/mathutil"
	"obj-cache-renderer/internal/mesh"
)

// RenderMesh draws the mesh's active index ordering into an NRGBA image with
// an orthographic turntable camera. The index stream is walked in triples
// over the flat vertex array exactly as a GPU indexed draw would, with the
// source winding preserved and no backface culling.
func RenderMesh(m *mesh.Mesh, size, supersample int, yawDeg, pitchDeg float64) *image.NRGBA {
	verts := m.Vertices()
	indices := m.Indices()
	if len(verts) == 0 || len(indices) < 3 {
		return image.NewNRGBA(image.Rect(0, 0, size, size))
	}

	R := mathutil.Mat3Mul(
		mathutil.RotX(mathutil.Deg2Rad(pitchDeg)),
		mathutil.RotY(mathutil.Deg2Rad(yawDeg)),
	)

	renderSize := size * supersample

	// Transform all vertices and fit the bounding box to the viewport.
	tx := make([]float64, len(verts))
	ty := make([]float64, len(verts))
	tz := make([]float64, len(verts))
	minB := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	maxB := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i, v := range verts {
		tv := R.MulVec3(mathutil.Vec3{float64(v.Position[0]), float64(v.Position[1]), float64(v.Position[2])})
		tx[i], ty[i], tz[i] = tv[0], tv[1], tv[2]
		for k := 0; k < 3; k++ {
			if tv[k] < minB[k] {
				minB[k] = tv[k]
			}
			if tv[k] > maxB[k] {
				maxB[k] = tv[k]
			}
		}
	}

	center := minB.Add(maxB).Scale(0.5)
	span := maxB[0] - minB[0]
	if s := maxB[1] - minB[1]; s > span {
		span = s
	}
	if span < 0.001 {
		span = 0.001
	}

	margin := renderSize / 16
	scale := float64(renderSize-2*margin) / span
	half := float64(renderSize) / 2

	px := make([]float64, len(verts))
	py := make([]float64, len(verts))
	pz := make([]float64, len(verts))
	for i := range verts {
		px[i] = (tx[i]-center[0])*scale + half
		py[i] = half - (ty[i]-center[1])*scale // screen y grows downward
		pz[i] = (tz[i] - center[2]) * scale
	}

	mat := m.Material()
	lc := DefaultLightConfig().ForMaterial(mat.Ambient, mat.Specular, mat.SpecularExponent)
	tex := mat.MapKd

	// Untextured fallback color comes from the diffuse reflectance.
	defR := clamp255(float64(mat.Diffuse[0]) * 255)
	defG := clamp255(float64(mat.Diffuse[1]) * 255)
	defB := clamp255(float64(mat.Diffuse[2]) * 255)
	defA := clamp255(float64(mat.Dissolve) * 255)

	fb := NewFrameBuffer(renderSize, renderSize)

	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]

		// Flat shade from the face's averaged vertex normals, rotated into
		// view space. Degenerate normals fall back to the geometric normal.
		n := mathutil.Vec3{
			float64(verts[a].Normal[0] + verts[b].Normal[0] + verts[c].Normal[0]),
			float64(verts[a].Normal[1] + verts[b].Normal[1] + verts[c].Normal[1]),
			float64(verts[a].Normal[2] + verts[b].Normal[2] + verts[c].Normal[2]),
		}
		if n.Len() < 1e-12 {
			e1 := mathutil.Vec3{px[b] - px[a], py[b] - py[a], pz[b] - pz[a]}
			e2 := mathutil.Vec3{px[c] - px[a], py[c] - py[a], pz[c] - pz[a]}
			n = e1.Cross(e2)
		} else {
			n = R.MulVec3(n)
		}
		shade := lc.ComputeShade(n.Normalize())

		RasterizeTriangle(fb,
			[3]float64{px[a], px[b], px[c]},
			[3]float64{py[a], py[b], py[c]},
			[3]float64{pz[a], pz[b], pz[c]},
			[3][2]float32{verts[a].TexCoord, verts[b].TexCoord, verts[c].TexCoord},
			tex, defR, defG, defB, defA, shade, &lc)
	}

	return fb.Image()
}
