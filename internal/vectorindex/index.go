// Package vectorindex provides a flat, exact nearest-neighbor index over
// embedding vectors using squared Euclidean (L2) distance.
//
// The index is a full-replace structure: it is built once from a vector set
// and never mutated. At the scale it serves (tens to low thousands of vectors
// per project) an exhaustive scan is both acceptable and expected; there are
// no approximate-search shortcuts.
package vectorindex

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sort"
)

// Hit is one search result: the position of a vector in the build-time order,
// and its squared-L2 distance to the query (lower = more similar).
type Hit struct {
	Position int
	Distance float64
}

// Index holds all vectors for one project in build order. Position i
// corresponds to the i-th item of the source collection at build time; the
// caller is responsible for rebuilding the index whenever that collection
// changes.
type Index struct {
	dim     int
	vectors [][]float32
}

// Build constructs a flat index over the given vectors. All vectors must share
// one dimension. An empty vector set builds an empty index.
func Build(vectors [][]float32) (*Index, error) {
	idx := &Index{}
	for i, v := range vectors {
		if len(v) == 0 {
			return nil, fmt.Errorf("vector %d is empty", i)
		}
		if idx.dim == 0 {
			idx.dim = len(v)
		} else if len(v) != idx.dim {
			return nil, fmt.Errorf("vector %d has dimension %d, want %d", i, len(v), idx.dim)
		}
	}
	idx.vectors = vectors
	return idx, nil
}

// Len returns the number of indexed vectors.
func (idx *Index) Len() int { return len(idx.vectors) }

// Dimension returns the vector dimension, or 0 for an empty index.
func (idx *Index) Dimension() int { return idx.dim }

// Search returns the k nearest vectors by ascending squared-L2 distance.
// k is clamped to the index size. Ties are broken by insertion order, so
// results are deterministic. An empty index yields an empty, non-error result.
func (idx *Index) Search(query []float32, k int) ([]Hit, error) {
	if len(idx.vectors) == 0 || k <= 0 {
		return []Hit{}, nil
	}
	if len(query) != idx.dim {
		return nil, fmt.Errorf("query has dimension %d, want %d", len(query), idx.dim)
	}

	hits := make([]Hit, len(idx.vectors))
	for i, v := range idx.vectors {
		hits[i] = Hit{Position: i, Distance: sqDistance(query, v)}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

func sqDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

// payload is the serialized form. The format is opaque to callers and carries
// no cross-version guarantee.
type payload struct {
	Dim     int
	Vectors [][]float32
}

// Encode serializes the index to an opaque binary blob.
func (idx *Index) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(payload{Dim: idx.dim, Vectors: idx.vectors}); err != nil {
		return nil, fmt.Errorf("encode index: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reconstructs an index from a blob produced by Encode.
func Decode(blob []byte) (*Index, error) {
	var p payload
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}
	return &Index{dim: p.Dim, vectors: p.Vectors}, nil
}
