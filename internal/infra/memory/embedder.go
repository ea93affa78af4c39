package memory

import (
	"context"
	"hash/fnv"
	"strings"

	"struggle-quiz-service/internal/domain"
)

const defaultEmbedderDim = 64

// Embedder is a deterministic bag-of-tokens embedder: each token hashes to a
// bucket and increments it. Identical text maps to identical vectors and
// disjoint text to orthogonal ones, which is all the challenge flow needs in
// tests and model-less demo runs. It is not a semantic model.
type Embedder struct {
	dim int
}

func NewEmbedder(dim int) *Embedder {
	if dim <= 0 {
		dim = defaultEmbedderDim
	}
	return &Embedder{dim: dim}
}

func (e *Embedder) Embed(_ context.Context, text string) (domain.Fingerprint, error) {
	vec := make(domain.Fingerprint, e.dim)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(token))
		vec[h.Sum32()%uint32(e.dim)]++
	}
	return vec, nil
}
