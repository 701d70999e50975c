package obj

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleMTL = `newmtl bricks
Ns 96.0
Ka 0.1 0.2 0.3
Kd 0.4 0.5 0.6
Ks 0.7 0.8 0.9
Ke 0.0 0.1 0.0
Ni 1.45
d 0.75
illum 2
map_Kd bricks.png
map_Bump bump.png
map_Ks gloss.png
`

func writePNG(t *testing.T, dir, name string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestParseMTL(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "bricks.png")
	writePNG(t, dir, "bump.png")
	path := writeFile(t, dir, "sample.mtl", sampleMTL)

	mat, warnings, err := ParseMTL(path, nil)
	if err != nil {
		t.Fatal(err)
	}

	if mat.Name != "bricks" {
		t.Errorf("Name = %q, want bricks", mat.Name)
	}
	if mat.SpecularExponent != 96 {
		t.Errorf("Ns = %v, want 96", mat.SpecularExponent)
	}
	if mat.Ambient != ([3]float32{0.1, 0.2, 0.3}) {
		t.Errorf("Ka = %v", mat.Ambient)
	}
	if mat.Diffuse != ([3]float32{0.4, 0.5, 0.6}) {
		t.Errorf("Kd = %v", mat.Diffuse)
	}
	if mat.Specular != ([3]float32{0.7, 0.8, 0.9}) {
		t.Errorf("Ks = %v", mat.Specular)
	}
	if mat.Emissive != ([3]float32{0, 0.1, 0}) {
		t.Errorf("Ke = %v", mat.Emissive)
	}
	if mat.OpticalDensity != 1.45 {
		t.Errorf("Ni = %v, want 1.45", mat.OpticalDensity)
	}
	if mat.Dissolve != 0.75 {
		t.Errorf("d = %v, want 0.75", mat.Dissolve)
	}
	if mat.Illum != 2 {
		t.Errorf("illum = %d, want 2", mat.Illum)
	}

	if mat.MapKd == nil {
		t.Error("map_Kd not loaded")
	}
	if mat.MapBump == nil {
		t.Error("map_Bump not loaded")
	}
	// gloss.png does not exist: map stays nil, parse still succeeds.
	if mat.MapKs != nil {
		t.Error("map_Ks should be nil")
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "gloss.png") {
		t.Errorf("warnings = %v, want one about gloss.png", warnings)
	}
}

func TestParseOBJWithMTL(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "bricks.png")
	writeFile(t, dir, "sample.mtl", sampleMTL)
	path := writeFile(t, dir, "model.obj", "mtllib sample.mtl\n"+triOBJ)

	m, err := Parse(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if m.Material.Name != "bricks" {
		t.Errorf("material = %q, want bricks", m.Material.Name)
	}
	if m.Material.MapKd == nil {
		t.Error("diffuse map not resolved relative to the MTL directory")
	}
}

func TestParseMissingMTLDegrades(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "model.obj", "mtllib gone.mtl\n"+triOBJ)

	m, err := Parse(path, Options{})
	if err != nil {
		t.Fatalf("missing MTL must not fail the load: %v", err)
	}
	if len(m.Indices) != 3 {
		t.Fatalf("indices = %d, want 3", len(m.Indices))
	}
	if len(m.Warnings) == 0 {
		t.Error("missing MTL should be reported as a warning")
	}
	// Falls back to the default material.
	if m.Material.Dissolve != 1 {
		t.Errorf("default dissolve = %v, want 1", m.Material.Dissolve)
	}
}
