// Package similarity ranks embedding vectors against a query vector.
package similarity

import (
	"container/heap"
	"math"

	"github.com/soundprediction/embedlink/pkg/wire"
)

// Cosine calculates the cosine similarity between two float32 vectors.
// Returns 0 if the vectors have different lengths, are empty, or either
// has zero magnitude. The result is in the range [-1, 1].
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Dot calculates the dot product of two float32 vectors. Returns 0 if the
// vectors have different lengths.
func Dot(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var result float64
	for i := range a {
		result += float64(a[i]) * float64(b[i])
	}
	return result
}

// Norm calculates the Euclidean magnitude (L2 norm) of a float32 vector.
func Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// Normalize normalizes a float32 vector to unit length. Returns nil if the
// input is empty or has zero magnitude.
func Normalize(v []float32) []float32 {
	if len(v) == 0 {
		return nil
	}

	mag := Norm(v)
	if mag == 0 {
		return nil
	}

	result := make([]float32, len(v))
	for i, x := range v {
		result[i] = float32(float64(x) / mag)
	}
	return result
}

// Match is one ranked document position with its similarity score.
type Match struct {
	// Index is the document's position in the ranked slice.
	Index int
	// Score is the cosine similarity against the query, in [-1, 1].
	Score float64
}

// Rank scores each document vector against the query and returns the top k
// matches in descending score order. Empty placeholder vectors (failed or
// skipped embeddings) and base64-encoded vectors are not rankable and are
// left out of the result.
func Rank(query wire.Vector, docs []wire.Vector, k int) []Match {
	q := query.Floats
	if len(q) == 0 || k <= 0 {
		return nil
	}

	matches := make([]Match, 0, len(docs))
	for i, d := range docs {
		f := d.Floats
		if len(f) == 0 {
			continue
		}
		matches = append(matches, Match{Index: i, Score: Cosine(q, f)})
	}

	return topK(matches, k)
}

// matchHeap is a min-heap over scores: the weakest match stays at the root
// so a stronger candidate can displace it in O(log k).
type matchHeap []Match

func (h matchHeap) Len() int           { return len(h) }
func (h matchHeap) Less(i, j int) bool { return h[i].Score < h[j].Score }
func (h matchHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *matchHeap) Push(x any) { *h = append(*h, x.(Match)) }

func (h *matchHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// topK keeps the k highest-scoring matches, descending. O(n log k).
func topK(matches []Match, k int) []Match {
	if len(matches) == 0 {
		return nil
	}
	if k > len(matches) {
		k = len(matches)
	}

	h := make(matchHeap, 0, k)
	heap.Init(&h)
	for _, m := range matches {
		if h.Len() < k {
			heap.Push(&h, m)
		} else if m.Score > h[0].Score {
			heap.Pop(&h)
			heap.Push(&h, m)
		}
	}

	result := make([]Match, h.Len())
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(Match)
	}
	return result
}
