package texture

import (
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

func writeImage(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 120, 80, 40, 255
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg":
		err = jpeg.Encode(f, img, nil)
	case ".bmp":
		err = bmp.Encode(f, img)
	case ".tga":
		err = tga.Encode(f, img)
	default:
		t.Fatalf("unhandled extension in %s", path)
	}
	if err != nil {
		t.Fatal(err)
	}
}

func TestIndexResolvesCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "Bricks.png"))

	idx := BuildIndex(dir)
	if idx.Len() != 1 {
		t.Fatalf("indexed %d textures, want 1", idx.Len())
	}

	for _, name := range []string{"bricks.png", "BRICKS.PNG", "bricks.jpg", `textures\bricks.png`} {
		if _, ok := idx.ResolvePath(name); !ok {
			t.Errorf("ResolvePath(%q) failed", name)
		}
	}
	if _, ok := idx.ResolvePath("mortar.png"); ok {
		t.Error("ResolvePath found a texture that does not exist")
	}
}

func TestIndexPrefersAlphaFormats(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "wall.jpg"))
	writeImage(t, filepath.Join(dir, "wall.png"))

	idx := BuildIndex(dir)
	path, ok := idx.ResolvePath("wall.jpg")
	if !ok {
		t.Fatal("wall not indexed")
	}
	if filepath.Ext(path) != ".png" {
		t.Errorf("resolved %s, want the PNG to win over the JPEG", path)
	}
}

func TestCacheResolve(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "stone.png"))

	cache := NewCache(BuildIndex(dir))
	img := cache.Resolve("stone.png")
	if img == nil {
		t.Fatal("Resolve returned nil for an existing texture")
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Errorf("bounds = %v, want 4x4", img.Bounds())
	}
	if again := cache.Resolve("stone.png"); again != img {
		t.Error("second Resolve did not return the cached image")
	}
	if cache.Resolve("missing.png") != nil {
		t.Error("Resolve returned an image for a missing texture")
	}
}

func TestLoadTexture(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diffuse.jpg")
	writeImage(t, path)

	img, err := LoadTexture(path)
	if err != nil {
		t.Fatal(err)
	}
	// JPEG has no alpha channel; conversion must force it opaque.
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 {
			t.Fatalf("alpha at %d = %d, want 255", i, img.Pix[i])
		}
	}
}

func TestLoadTextureEveryFormat(t *testing.T) {
	// Decoding is dispatched by extension, so every supported format must
	// round-trip, not just the ones the image package can sniff.
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.jpg", "c.bmp", "d.tga"} {
		path := filepath.Join(dir, name)
		writeImage(t, path)

		img, err := LoadTexture(path)
		if err != nil {
			t.Errorf("LoadTexture(%s): %v", name, err)
			continue
		}
		if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
			t.Errorf("%s: bounds = %v, want 4x4", name, img.Bounds())
		}
		// Opaque test pixels survive every codec, lossy or not.
		if a := img.Pix[3]; a != 255 {
			t.Errorf("%s: alpha = %d, want 255", name, a)
		}
	}
}

func TestLoadTextureErrors(t *testing.T) {
	if _, err := LoadTexture(filepath.Join(t.TempDir(), "none.png")); err == nil {
		t.Error("want error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTexture(bad); err == nil {
		t.Error("want error for undecodable file")
	}

	unk := filepath.Join(t.TempDir(), "sprite.gif")
	if err := os.WriteFile(unk, []byte("GIF89a"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTexture(unk); err == nil {
		t.Error("want error for unsupported extension")
	}
}
