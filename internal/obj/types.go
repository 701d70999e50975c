package obj

import (
	"fmt"
	"image"
)

// Vertex is one corner of a triangle with a fixed 3-float-slot layout:
// position, texCoord, normal, in that order. Faces emit fresh copies per
// corner; attribute combinations are never deduplicated.
type Vertex struct {
	Position [3]float32
	TexCoord [2]float32
	Normal   [3]float32
}

// Material holds the reflectance parameters and texture maps parsed from an
// MTL side-file. Map images are resolved through a texture.Resolver at parse
// time; a map that fails to resolve stays nil and the mesh renders untextured.
type Material struct {
	Name string

	Ambient  [3]float32 // Ka
	Diffuse  [3]float32 // Kd
	Specular [3]float32 // Ks
	Emissive [3]float32 // Ke

	SpecularExponent float32 // Ns
	OpticalDensity   float32 // Ni
	Dissolve         float32 // d
	Illum            int     // illumination model

	MapKd   *image.NRGBA // diffuse map
	MapBump *image.NRGBA // bump map
	MapKs   *image.NRGBA // specular map

	MapKdPath   string
	MapBumpPath string
	MapKsPath   string
}

// FormatError reports a malformed or out-of-range record. The parse of the
// offending file is aborted; no prior mesh state is touched.
type FormatError struct {
	Path string
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("obj: %s:%d: %s", e.Path, e.Line, e.Msg)
}
