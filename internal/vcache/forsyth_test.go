package vcache

import (
	"math/rand/v2"
	"reflect"
	"sort"
	"testing"
)

// gridIndices builds a w×h quad grid of shared-vertex triangles in an order
// that is hostile to a small cache: all "upper" triangles first, then all
// "lower" ones.
func gridIndices(w, h int) (indices []uint32, vertexCount int) {
	vertexCount = (w + 1) * (h + 1)
	at := func(x, y int) uint32 { return uint32(y*(w+1) + x) }
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			indices = append(indices, at(x, y), at(x+1, y), at(x, y+1))
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			indices = append(indices, at(x+1, y), at(x+1, y+1), at(x, y+1))
		}
	}
	return indices, vertexCount
}

func sorted(indices []uint32) []uint32 {
	out := make([]uint32, len(indices))
	copy(out, indices)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestOptimizeIsPermutation(t *testing.T) {
	indices, vertexCount := gridIndices(16, 16)

	out := Optimize(indices, vertexCount)
	if len(out) != len(indices) {
		t.Fatalf("len = %d, want %d", len(out), len(indices))
	}
	if !reflect.DeepEqual(sorted(out), sorted(indices)) {
		t.Fatal("output is not a permutation of the input multiset")
	}
}

func TestOptimizeDeterministic(t *testing.T) {
	indices, vertexCount := gridIndices(12, 9)

	a := Optimize(indices, vertexCount)
	b := Optimize(indices, vertexCount)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("two runs on the same input produced different orders")
	}
}

func TestOptimizeInputUntouched(t *testing.T) {
	indices, vertexCount := gridIndices(4, 4)
	before := make([]uint32, len(indices))
	copy(before, indices)

	Optimize(indices, vertexCount)
	if !reflect.DeepEqual(indices, before) {
		t.Fatal("input slice was modified")
	}
}

func TestOptimizeReducesMisses(t *testing.T) {
	indices, vertexCount := gridIndices(32, 32)

	// A shuffled triangle order is the adversarial baseline.
	tris := len(indices) / 3
	rng := rand.New(rand.NewPCG(7, 13))
	order := rng.Perm(tris)
	shuffled := make([]uint32, 0, len(indices))
	for _, tri := range order {
		shuffled = append(shuffled, indices[tri*3], indices[tri*3+1], indices[tri*3+2])
	}

	out := Optimize(shuffled, vertexCount)

	for _, size := range []int{8, 16, 32, 64} {
		before := SimulateFIFO(shuffled, size)
		after := SimulateFIFO(out, size)
		if after > before {
			t.Errorf("cache %d: misses went from %d to %d", size, before, after)
		}
	}

	// At the modeled size the improvement should be substantial, not
	// marginal: a shuffled grid misses nearly every vertex.
	if after, before := SimulateFIFO(out, CacheSize), SimulateFIFO(shuffled, CacheSize); float64(after) > 0.8*float64(before) {
		t.Errorf("expected a real improvement at cache %d: %d → %d", CacheSize, before, after)
	}
}

func TestOptimizeDisjointTrianglesFixedPoint(t *testing.T) {
	// No vertex is shared across triangles, so every ordering has the same
	// miss rate, and tie-breaking keeps the input order.
	indices := make([]uint32, 0, 30)
	for v := uint32(0); v < 30; v++ {
		indices = append(indices, v)
	}

	out := Optimize(indices, 30)
	if !reflect.DeepEqual(out, indices) {
		t.Fatalf("disjoint mesh reordered: %v", out)
	}

	if a, b := SimulateFIFO(indices, CacheSize), SimulateFIFO(out, CacheSize); a != b {
		t.Fatalf("miss count changed on a disjoint mesh: %d vs %d", a, b)
	}
}

func TestOptimizeSmallInputs(t *testing.T) {
	if out := Optimize(nil, 0); len(out) != 0 {
		t.Errorf("empty input: %v", out)
	}
	one := []uint32{2, 0, 1}
	if out := Optimize(one, 3); !reflect.DeepEqual(out, one) {
		t.Errorf("single triangle: %v", out)
	}
}
