package obj

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"obj-cache-renderer/internal/texture"
)

// Options controls parsing.
type Options struct {
	// MaxOffset enables stress replication: every face additionally emits one
	// translated copy per non-zero integer offset vector with components in
	// [-MaxOffset, MaxOffset]. Zero disables replication.
	MaxOffset int

	// Textures resolves texture map names from the MTL file. When nil, maps
	// are resolved relative to the MTL file's directory.
	Textures texture.Resolver
}

// Model is the flat, draw-ready result of parsing one OBJ file.
type Model struct {
	Vertices []Vertex
	Indices  []uint32 // canonical triangle list, parse order, CCW winding
	Material Material
	Warnings []string // non-fatal degradations (missing MTL, missing maps)
}

// Parse reads a triangulated OBJ file and returns a Model. Faces must be
// triangles with full position/texCoord/normal references. Each face corner
// appends a fresh Vertex; nothing is deduplicated, so the index stream is
// simply 0,1,2,3,... in parse order.
func Parse(path string, opts Options) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("obj: open %s: %w", path, err)
	}
	defer f.Close()

	offsets := OffsetVectors(opts.MaxOffset)
	dir := filepath.Dir(path)

	m := &Model{Material: DefaultMaterial()}
	var positions [][3]float32
	var texCoords [][2]float32
	var normals [][3]float32

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0][0] == '#' {
			continue
		}

		switch fields[0] {
		case "mtllib":
			if len(fields) < 2 {
				return nil, &FormatError{Path: path, Line: lineNo, Msg: "mtllib without file name"}
			}
			mtlPath := filepath.Join(dir, fields[1])
			mat, warns, err := ParseMTL(mtlPath, opts.Textures)
			if err != nil {
				// Material resolution failure is non-fatal: the mesh still
				// loads, maps are simply absent.
				m.Warnings = append(m.Warnings, fmt.Sprintf("mtllib %s: %v", fields[1], err))
				continue
			}
			m.Material = mat
			m.Warnings = append(m.Warnings, warns...)

		case "usemtl":
			// Recorded only; the mesh carries a single global material.
			if len(fields) >= 2 && m.Material.Name == "" {
				m.Material.Name = fields[1]
			}

		case "v":
			p, err := parseVec3(path, lineNo, fields)
			if err != nil {
				return nil, err
			}
			positions = append(positions, p)

		case "vt":
			uv, err := parseVec2(path, lineNo, fields)
			if err != nil {
				return nil, err
			}
			texCoords = append(texCoords, uv)

		case "vn":
			n, err := parseVec3(path, lineNo, fields)
			if err != nil {
				return nil, err
			}
			normals = append(normals, n)

		case "f":
			if len(fields) != 4 {
				return nil, &FormatError{Path: path, Line: lineNo,
					Msg: fmt.Sprintf("face with %d corners (triangulated input required)", len(fields)-1)}
			}
			var corners [3]Vertex
			for i := 0; i < 3; i++ {
				v, err := parseCorner(path, lineNo, fields[1+i], positions, texCoords, normals)
				if err != nil {
					return nil, err
				}
				corners[i] = v
			}
			m.appendTriangle(corners)

			// Stress replication: one translated copy per offset vector,
			// same winding and attribute reuse, only the position differs.
			for _, off := range offsets {
				c := corners
				for i := range c {
					c[i].Position[0] += off[0]
					c[i].Position[1] += off[1]
					c[i].Position[2] += off[2]
				}
				m.appendTriangle(c)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("obj: read %s: %w", path, err)
	}

	return m, nil
}

func (m *Model) appendTriangle(corners [3]Vertex) {
	for i := 0; i < 3; i++ {
		m.Vertices = append(m.Vertices, corners[i])
		m.Indices = append(m.Indices, uint32(len(m.Vertices)-1))
	}
}

// parseCorner resolves one "pos/tex/norm" face slot. References are 1-based
// in the file; out-of-range references abort the parse rather than read out
// of bounds.
func parseCorner(path string, line int, s string, positions [][3]float32, texCoords [][2]float32, normals [][3]float32) (Vertex, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return Vertex{}, &FormatError{Path: path, Line: line,
			Msg: fmt.Sprintf("face corner %q: want pos/tex/norm", s)}
	}

	pi, err1 := strconv.Atoi(parts[0])
	ti, err2 := strconv.Atoi(parts[1])
	ni, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return Vertex{}, &FormatError{Path: path, Line: line,
			Msg: fmt.Sprintf("face corner %q: non-integer reference", s)}
	}
	if pi < 1 || pi > len(positions) {
		return Vertex{}, &FormatError{Path: path, Line: line,
			Msg: fmt.Sprintf("position reference %d out of range (have %d)", pi, len(positions))}
	}
	if ti < 1 || ti > len(texCoords) {
		return Vertex{}, &FormatError{Path: path, Line: line,
			Msg: fmt.Sprintf("texCoord reference %d out of range (have %d)", ti, len(texCoords))}
	}
	if ni < 1 || ni > len(normals) {
		return Vertex{}, &FormatError{Path: path, Line: line,
			Msg: fmt.Sprintf("normal reference %d out of range (have %d)", ni, len(normals))}
	}

	return Vertex{
		Position: positions[pi-1],
		TexCoord: texCoords[ti-1],
		Normal:   normals[ni-1],
	}, nil
}

func parseVec3(path string, line int, fields []string) ([3]float32, error) {
	var v [3]float32
	if len(fields) < 4 {
		return v, &FormatError{Path: path, Line: line,
			Msg: fmt.Sprintf("%s record needs 3 components", fields[0])}
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[1+i], 32)
		if err != nil {
			return v, &FormatError{Path: path, Line: line,
				Msg: fmt.Sprintf("bad float %q", fields[1+i])}
		}
		v[i] = float32(f)
	}
	return v, nil
}

func parseVec2(path string, line int, fields []string) ([2]float32, error) {
	var v [2]float32
	if len(fields) < 3 {
		return v, &FormatError{Path: path, Line: line, Msg: "vt record needs 2 components"}
	}
	for i := 0; i < 2; i++ {
		f, err := strconv.ParseFloat(fields[1+i], 32)
		if err != nil {
			return v, &FormatError{Path: path, Line: line,
				Msg: fmt.Sprintf("bad float %q", fields[1+i])}
		}
		v[i] = float32(f)
	}
	return v, nil
}
