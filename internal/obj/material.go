package obj

import (
	"bufio"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"obj-cache-renderer/internal/texture"
)

// DefaultMaterial returns the material used when no MTL file is referenced:
// neutral grey, fully opaque, moderate highlight.
func DefaultMaterial() Material {
	return Material{
		Ambient:          [3]float32{0.2, 0.2, 0.2},
		Diffuse:          [3]float32{0.8, 0.8, 0.8},
		Specular:         [3]float32{0.5, 0.5, 0.5},
		SpecularExponent: 32,
		OpticalDensity:   1,
		Dissolve:         1,
		Illum:            2,
	}
}

// ParseMTL reads a material side-file. Texture map names are resolved through
// the given resolver; when resolver is nil, maps are resolved relative to the
// MTL file's own directory. A map that cannot be resolved stays nil and is
// reported as a warning, not an error — the mesh renders without it.
func ParseMTL(path string, resolver texture.Resolver) (Material, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return DefaultMaterial(), nil, fmt.Errorf("obj: open mtl %s: %w", path, err)
	}
	defer f.Close()

	if resolver == nil {
		resolver = texture.NewDirResolver(filepath.Dir(path))
	}

	mat := DefaultMaterial()
	var warnings []string
	lineNo := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0][0] == '#' {
			continue
		}

		switch fields[0] {
		case "newmtl":
			if len(fields) >= 2 {
				mat.Name = fields[1]
			}
		case "Ns":
			mat.SpecularExponent, err = parseScalar(path, lineNo, fields)
		case "Ka":
			mat.Ambient, err = parseVec3(path, lineNo, fields)
		case "Kd":
			mat.Diffuse, err = parseVec3(path, lineNo, fields)
		case "Ks":
			mat.Specular, err = parseVec3(path, lineNo, fields)
		case "Ke":
			mat.Emissive, err = parseVec3(path, lineNo, fields)
		case "Ni":
			mat.OpticalDensity, err = parseScalar(path, lineNo, fields)
		case "d":
			mat.Dissolve, err = parseScalar(path, lineNo, fields)
		case "illum":
			var v float32
			v, err = parseScalar(path, lineNo, fields)
			mat.Illum = int(v)
		case "map_Kd":
			mat.MapKdPath, mat.MapKd, warnings = resolveMap(fields, resolver, warnings)
		case "map_Bump":
			mat.MapBumpPath, mat.MapBump, warnings = resolveMap(fields, resolver, warnings)
		case "map_Ks":
			mat.MapKsPath, mat.MapKs, warnings = resolveMap(fields, resolver, warnings)
		}
		if err != nil {
			return DefaultMaterial(), nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return DefaultMaterial(), nil, fmt.Errorf("obj: read mtl %s: %w", path, err)
	}

	return mat, warnings, nil
}

func resolveMap(fields []string, resolver texture.Resolver, warnings []string) (string, *image.NRGBA, []string) {
	if len(fields) < 2 {
		return "", nil, warnings
	}
	// Options like -bm precede the file name; the name is the last field.
	name := fields[len(fields)-1]
	img := resolver.Resolve(name)
	if img == nil {
		warnings = append(warnings, fmt.Sprintf("%s %s: texture not found", fields[0], name))
	}
	return name, img, warnings
}

func parseScalar(path string, line int, fields []string) (float32, error) {
	if len(fields) < 2 {
		return 0, &FormatError{Path: path, Line: line,
			Msg: fmt.Sprintf("%s record needs a value", fields[0])}
	}
	f, err := strconv.ParseFloat(fields[1], 32)
	if err != nil {
		return 0, &FormatError{Path: path, Line: line,
			Msg: fmt.Sprintf("bad float %q", fields[1])}
	}
	return float32(f), nil
}
