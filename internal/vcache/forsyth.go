// Package vcache reorders triangle index streams for post-transform vertex
// cache locality, and simulates a FIFO vertex cache to measure the effect.
package vcache

import "math"

// CacheSize is the modeled post-transform cache size used for scoring.
const CacheSize = 32

const (
	// Three slots of slack past the modeled size keep just-emitted vertices
	// scoreable before they fall out entirely.
	maxCacheEntries = CacheSize + 3

	cacheDecayPower   = 1.5
	lastTriScore      = 0.75
	valenceBoostScale = 2.0
	valenceBoostPower = 0.5
)

// cachePosScore[p] is the score of a vertex at cache position p. The exact
// curve is a tunable heuristic; correctness needs only that it decreases
// monotonically away from the cache head.
var cachePosScore [maxCacheEntries]float32

func init() {
	for p := 0; p < maxCacheEntries; p++ {
		if p < 3 {
			// The three most recent vertices all score the same so that
			// triangle strips do not degenerate into fans.
			cachePosScore[p] = lastTriScore
		} else {
			scale := 1.0 / float64(CacheSize-3)
			s := 1.0 - float64(p-3)*scale
			if s < 0 {
				s = 0
			}
			cachePosScore[p] = float32(math.Pow(s, cacheDecayPower))
		}
	}
}

// vertexScore combines the cache-position score with a valence boost that
// rewards vertices with few remaining triangles, so they get finished off
// early and free their cache slots.
func vertexScore(cachePos, liveTris int) float32 {
	if liveTris == 0 {
		return -1
	}
	var score float32
	if cachePos >= 0 {
		score = cachePosScore[cachePos]
	}
	score += valenceBoostScale * float32(math.Pow(float64(liveTris), -valenceBoostPower))
	return score
}

// Optimize returns a permutation of the triangle list that improves vertex
// reuse under a bounded FIFO cache, using Tom Forsyth's greedy linear-speed
// heuristic. The input is not modified. Every index must be < vertexCount.
// Deterministic: the same input always yields the same output.
func Optimize(indices []uint32, vertexCount int) []uint32 {
	triCount := len(indices) / 3
	if triCount <= 1 || vertexCount == 0 {
		out := make([]uint32, len(indices))
		copy(out, indices)
		return out
	}

	// Per-vertex triangle adjacency, grouped into one flat array.
	liveTris := make([]int, vertexCount)
	for _, idx := range indices {
		liveTris[idx]++
	}
	adjStart := make([]int, vertexCount+1)
	for v := 0; v < vertexCount; v++ {
		adjStart[v+1] = adjStart[v] + liveTris[v]
	}
	adj := make([]int32, len(indices))
	fill := make([]int, vertexCount)
	copy(fill, adjStart[:vertexCount])
	for t := 0; t < triCount; t++ {
		for c := 0; c < 3; c++ {
			v := indices[t*3+c]
			adj[fill[v]] = int32(t)
			fill[v]++
		}
	}

	// Initial scores.
	cachePos := make([]int, vertexCount)
	vScore := make([]float32, vertexCount)
	for v := 0; v < vertexCount; v++ {
		cachePos[v] = -1
		vScore[v] = vertexScore(-1, liveTris[v])
	}
	triScore := make([]float32, triCount)
	for t := 0; t < triCount; t++ {
		triScore[t] = vScore[indices[t*3]] + vScore[indices[t*3+1]] + vScore[indices[t*3+2]]
	}

	emitted := make([]bool, triCount)
	out := make([]uint32, 0, len(indices))
	cache := make([]uint32, 0, maxCacheEntries+3)
	scratch := make([]uint32, 0, maxCacheEntries+3)

	// Seed with the best-scoring triangle, ties broken by input order.
	best := 0
	for t := 1; t < triCount; t++ {
		if triScore[t] > triScore[best] {
			best = t
		}
	}

	for range triCount {
		if best < 0 {
			// Disconnected component: fall back to a scan of the remaining
			// triangles. Rare, so the amortized cost stays near-linear.
			bestScore := float32(math.Inf(-1))
			for t := 0; t < triCount; t++ {
				if !emitted[t] && triScore[t] > bestScore {
					bestScore = triScore[t]
					best = t
				}
			}
		}

		emitted[best] = true
		corners := [3]uint32{indices[best*3], indices[best*3+1], indices[best*3+2]}
		out = append(out, corners[0], corners[1], corners[2])

		// Drop the emitted triangle from its vertices' live lists.
		for _, v := range corners {
			s, n := adjStart[v], liveTris[v]
			for i := s; i < s+n; i++ {
				if adj[i] == int32(best) {
					adj[i] = adj[s+n-1]
					break
				}
			}
			liveTris[v]--
		}

		// Push the three vertices to the cache head, keeping the previous
		// order of the rest. Entries past the modeled size are evicted.
		scratch = scratch[:0]
		scratch = append(scratch, corners[0], corners[1], corners[2])
		for _, v := range cache {
			if v != corners[0] && v != corners[1] && v != corners[2] {
				scratch = append(scratch, v)
			}
		}
		if len(scratch) > maxCacheEntries {
			for _, v := range scratch[maxCacheEntries:] {
				cachePos[v] = -1
			}
			scratch = scratch[:maxCacheEntries]
		}
		cache = cache[:len(scratch)]
		copy(cache, scratch)

		// Rescore the resident vertices and every live triangle touching
		// them; the best of those becomes the next emission candidate.
		best = -1
		bestScore := float32(math.Inf(-1))
		for p, v := range cache {
			cachePos[v] = p
			vScore[v] = vertexScore(p, liveTris[v])
		}
		for _, v := range cache {
			s, n := adjStart[v], liveTris[v]
			for i := s; i < s+n; i++ {
				t := int(adj[i])
				score := vScore[indices[t*3]] + vScore[indices[t*3+1]] + vScore[indices[t*3+2]]
				triScore[t] = score
				if score > bestScore {
					bestScore = score
					best = t
				}
			}
		}
	}

	return out
}
