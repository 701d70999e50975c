package vcache

import "testing"

func TestSimulateFIFO(t *testing.T) {
	cases := []struct {
		name      string
		indices   []uint32
		cacheSize int
		want      int
	}{
		{"empty", nil, 32, 0},
		{"all distinct", []uint32{0, 1, 2, 3, 4, 5}, 32, 6},
		{"full reuse", []uint32{0, 1, 2, 0, 1, 2}, 4, 3},
		{"reuse across triangles", []uint32{0, 1, 2, 2, 1, 3}, 4, 4},
		{"eviction forces re-miss", []uint32{0, 1, 2, 3, 0}, 3, 5},
		{"still resident", []uint32{0, 1, 2, 3, 1}, 3, 4},
		{"cache of one", []uint32{0, 0, 1, 0}, 1, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SimulateFIFO(tc.indices, tc.cacheSize); got != tc.want {
				t.Errorf("SimulateFIFO(%v, %d) = %d, want %d", tc.indices, tc.cacheSize, got, tc.want)
			}
		})
	}
}

func TestSimulateFIFOZeroCache(t *testing.T) {
	indices := []uint32{0, 1, 2}
	if got := SimulateFIFO(indices, 0); got != 3 {
		t.Errorf("zero-size cache should miss every reference, got %d", got)
	}
}

func TestACMR(t *testing.T) {
	// Two triangles, no sharing: 6 misses over 2 triangles.
	indices := []uint32{0, 1, 2, 3, 4, 5}
	if got := ACMR(indices, 32); got != 3.0 {
		t.Errorf("ACMR = %v, want 3.0", got)
	}
	if got := ACMR(nil, 32); got != 0 {
		t.Errorf("ACMR(nil) = %v, want 0", got)
	}
}
