package obj

// OffsetVectors returns every non-zero integer offset vector (dx,dy,dz) with
// each component in [-maxOffset, maxOffset] — (2·maxOffset+1)³ − 1 vectors,
// in x-major, then y, then z order. Used by the parser's stress replication
// to inflate triangle count for cache benchmarking.
func OffsetVectors(maxOffset int) [][3]float32 {
	if maxOffset <= 0 {
		return nil
	}
	side := 2*maxOffset + 1
	offsets := make([][3]float32, 0, side*side*side-1)
	for x := -maxOffset; x <= maxOffset; x++ {
		for y := -maxOffset; y <= maxOffset; y++ {
			for z := -maxOffset; z <= maxOffset; z++ {
				if x != 0 || y != 0 || z != 0 {
					offsets = append(offsets, [3]float32{float32(x), float32(y), float32(z)})
				}
			}
		}
	}
	return offsets
}
