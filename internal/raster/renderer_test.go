package raster

import (
	"os"
	"path/filepath"
	"testing"

	"obj-cache-renderer/internal/mesh"
	"obj-cache-renderer/internal/obj"
)

const quadOBJ = `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
f 1/1/1 3/3/1 4/4/1
`

func loadQuad(t *testing.T) *mesh.Mesh {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := mesh.Load(path, obj.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func opaquePixels(pix []uint8) int {
	n := 0
	for i := 3; i < len(pix); i += 4 {
		if pix[i] > 0 {
			n++
		}
	}
	return n
}

func TestRenderMeshCoversViewport(t *testing.T) {
	m := loadQuad(t)

	img := RenderMesh(m, 64, 1, 0, 0)
	if got := img.Bounds().Dx(); got != 64 {
		t.Fatalf("width = %d, want 64", got)
	}

	// A face-on unit quad fills the viewport inside the fitting margin.
	covered := opaquePixels(img.Pix)
	if covered < 64*64/2 {
		t.Errorf("covered %d of %d pixels, expected at least half", covered, 64*64)
	}
}

func TestRenderMeshSameCoverageAcrossTriangleOrder(t *testing.T) {
	// The optimizer permutes whole triangles; with opaque geometry and a
	// z-buffer the covered pixel set is identical to the original order.
	m := loadQuad(t)

	m.SetMode(mesh.ModeOriginal)
	original := opaquePixels(RenderMesh(m, 64, 1, 30, -20).Pix)

	m.SetMode(mesh.ModeOptimized)
	optimized := opaquePixels(RenderMesh(m, 64, 1, 30, -20).Pix)

	if original != optimized {
		t.Errorf("coverage differs between orderings: %d vs %d", original, optimized)
	}
}

func TestRenderMeshEmpty(t *testing.T) {
	img := RenderMesh(&mesh.Mesh{}, 32, 1, 0, 0)
	if got := img.Bounds().Dx(); got != 32 {
		t.Fatalf("width = %d, want 32", got)
	}
	if opaquePixels(img.Pix) != 0 {
		t.Error("empty mesh produced visible pixels")
	}
}

func TestFrameBufferClear(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	fb.Color[0] = 255
	fb.ZBuf[0] = 1

	fb.Clear()
	if fb.Color[0] != 0 {
		t.Error("color not cleared")
	}
	if fb.ZBuf[0] >= 0 {
		t.Error("z-buffer not reset to -inf")
	}
}
