// Package mesh owns the loaded model: one flat vertex array, the three index
// orderings derived from it, and the material.
package mesh

import (
	"math/rand/v2"

	"obj-cache-renderer/internal/obj"
	"obj-cache-renderer/internal/vcache"
)

// Mode selects which index ordering is active. The integer values are the
// ones exposed on the CLI surface.
type Mode int

const (
	ModeOriginal  Mode = 1 // parse order, including replicated geometry
	ModeOptimized Mode = 2 // cache-optimized, computed once at load
	ModeShuffled  Mode = 3 // fresh random permutation on every selection
)

func (m Mode) String() string {
	switch m {
	case ModeOriginal:
		return "original"
	case ModeOptimized:
		return "optimized"
	case ModeShuffled:
		return "shuffled"
	}
	return "unknown"
}

// Mesh aggregates vertex storage, the index orderings, and the material.
// Vertices and the original/optimized orderings are immutable after load; the
// active ordering is swapped whole on a mode change, never rewritten in
// place, so a draw in progress always reads a fully-formed buffer.
type Mesh struct {
	vertices  []obj.Vertex
	material  obj.Material
	original  []uint32
	optimized []uint32
	active    []uint32
	mode      Mode
}

// New builds a Mesh from a parsed model. The optimized ordering is derived
// immediately; the active ordering starts as the original.
func New(model *obj.Model) *Mesh {
	m := &Mesh{
		vertices:  model.Vertices,
		material:  model.Material,
		original:  model.Indices,
		optimized: vcache.Optimize(model.Indices, len(model.Vertices)),
		mode:      ModeOriginal,
	}
	m.active = m.original
	return m
}

// Load parses an OBJ file and builds a Mesh from it.
func Load(path string, opts obj.Options) (*Mesh, error) {
	model, err := obj.Parse(path, opts)
	if err != nil {
		return nil, err
	}
	return New(model), nil
}

// Reload replaces the mesh contents from another file, discarding all three
// previous index orderings. On failure the receiver is left untouched, so the
// caller keeps drawing the prior mesh.
func (m *Mesh) Reload(path string, opts obj.Options) error {
	loaded, err := Load(path, opts)
	if err != nil {
		return err
	}
	*m = *loaded
	return nil
}

// SetMode switches the active index ordering. Values outside 1–3 are a
// no-op. Selecting ModeShuffled builds a fresh uniformly-random permutation
// every time; the other modes reuse their immutable buffers.
func (m *Mesh) SetMode(mode Mode) {
	switch mode {
	case ModeOriginal:
		m.active = m.original
	case ModeOptimized:
		m.active = m.optimized
	case ModeShuffled:
		shuffled := make([]uint32, len(m.original))
		copy(shuffled, m.original)
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		m.active = shuffled
	default:
		return
	}
	m.mode = mode
}

// Mode returns the currently active ordering mode.
func (m *Mesh) Mode() Mode { return m.mode }

// Vertices returns the flat vertex array shared by all orderings.
func (m *Mesh) Vertices() []obj.Vertex { return m.vertices }

// Indices returns the active index ordering. The returned slice must not be
// modified.
func (m *Mesh) Indices() []uint32 { return m.active }

// Original returns the parse-order index ordering.
func (m *Mesh) Original() []uint32 { return m.original }

// Optimized returns the cache-optimized index ordering.
func (m *Mesh) Optimized() []uint32 { return m.optimized }

// Material returns the mesh's single global material.
func (m *Mesh) Material() obj.Material { return m.material }

// TriangleCount returns the number of triangles in the index stream.
func (m *Mesh) TriangleCount() int { return len(m.active) / 3 }
