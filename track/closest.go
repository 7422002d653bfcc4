package track

import (
	"image"
	"math"
	"runtime"
	"sync"

	"github.com/kinetiklab/silhouette/imaging"
)

// serialThreshold is the first-contour size below which chunked dispatch
// costs more than it saves.
const serialThreshold = 64

// Pair is the result of a closest-pair search. P1 belongs to the first
// contour, P2 to the second. Found is false when either contour was empty,
// in which case both points are the (0,0) sentinel; callers must treat that
// as "no interference", never as a zero-distance match.
type Pair struct {
	P1, P2 image.Point
	Dist   float64
	Found  bool
}

// ClosestPair returns the pair of points, one from each contour, with the
// globally minimum Euclidean distance. Ties break deterministically by
// contour iteration order (first index, then second), regardless of how
// the search is chunked or scheduled.
func ClosestPair(c1, c2 imaging.Contour) Pair {
	if len(c1) == 0 || len(c2) == 0 {
		return Pair{}
	}

	chunks := runtime.GOMAXPROCS(0)
	if chunks > len(c1) {
		chunks = len(c1)
	}
	if len(c1) < serialThreshold {
		chunks = 1
	}
	return closestPairChunked(c1, c2, chunks)
}

// chunkBest is a chunk-local minimum: squared distance plus the indices
// that achieved it. Indices implement the deterministic tie-break.
type chunkBest struct {
	distSq float64
	i, j   int
}

// closestPairChunked partitions c1 into contiguous chunks, scans each
// against all of c2 concurrently with no shared mutable state, and reduces
// the per-chunk minima single-threaded.
func closestPairChunked(c1, c2 imaging.Contour, chunks int) Pair {
	n := len(c1)
	if chunks < 1 {
		chunks = 1
	}
	if chunks > n {
		chunks = n
	}
	size := (n + chunks - 1) / chunks

	results := make([]chunkBest, chunks)
	var wg sync.WaitGroup
	for ci := 0; ci < chunks; ci++ {
		start := ci * size
		end := min(start+size, n)
		if start >= end {
			results[ci] = chunkBest{distSq: math.MaxFloat64, i: -1}
			continue
		}
		wg.Add(1)
		go func(ci, start, end int) {
			defer wg.Done()
			results[ci] = scanChunk(c1, c2, start, end)
		}(ci, start, end)
	}
	wg.Wait()

	best := results[0]
	for _, r := range results[1:] {
		if r.i < 0 {
			continue
		}
		if r.distSq < best.distSq ||
			(r.distSq == best.distSq && (r.i < best.i || (r.i == best.i && r.j < best.j))) {
			best = r
		}
	}

	return Pair{
		P1:    c1[best.i],
		P2:    c2[best.j],
		Dist:  math.Sqrt(best.distSq),
		Found: true,
	}
}

// scanChunk brute-forces c1[start:end] against all of c2. Strict-less
// comparison in scan order keeps the earliest pair on ties.
func scanChunk(c1, c2 imaging.Contour, start, end int) chunkBest {
	best := chunkBest{distSq: math.MaxFloat64, i: start, j: 0}
	for i := start; i < end; i++ {
		p1 := c1[i]
		for j, p2 := range c2 {
			dx := float64(p1.X - p2.X)
			dy := float64(p1.Y - p2.Y)
			if d := dx*dx + dy*dy; d < best.distSq {
				best = chunkBest{distSq: d, i: i, j: j}
			}
		}
	}
	return best
}
