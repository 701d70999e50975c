package vcache

// SimulateFIFO plays an index stream through a fixed-capacity FIFO vertex
// cache and returns the number of misses — the vertex-shader invocations an
// indexed draw of that stream would cost. A reference "hits" if the vertex is
// still queued and "misses" otherwise; a miss enqueues the vertex, evicting
// the oldest entry once the cache is full.
func SimulateFIFO(indices []uint32, cacheSize int) int {
	if cacheSize <= 0 || len(indices) == 0 {
		return len(indices)
	}

	fifo := make([]uint32, cacheSize)
	resident := make(map[uint32]struct{}, cacheSize)
	head, used := 0, 0
	misses := 0

	for _, idx := range indices {
		if _, ok := resident[idx]; ok {
			continue
		}
		misses++
		if used == cacheSize {
			delete(resident, fifo[head])
		} else {
			used++
		}
		fifo[head] = idx
		resident[idx] = struct{}{}
		head = (head + 1) % cacheSize
	}
	return misses
}

// ACMR returns the average cache miss ratio: misses per triangle. The
// theoretical floor approaches 0.5 for a perfectly ordered regular mesh; 3.0
// means no reuse at all.
func ACMR(indices []uint32, cacheSize int) float64 {
	tris := len(indices) / 3
	if tris == 0 {
		return 0
	}
	return float64(SimulateFIFO(indices, cacheSize)) / float64(tris)
}
