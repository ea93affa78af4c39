package fingerprint

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"struggle-quiz-service/internal/domain"
)

// Embedder turns text into a fixed-length semantic vector. The model behind
// it (local, remote, fake) is a collaborator; the codec treats it as a pure
// function of its input for a given model version.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.Fingerprint, error)
}

// Codec computes fingerprints and converts them to and from the stored byte
// layout: float32 values, little-endian, no header.
type Codec struct {
	embedder Embedder
}

func NewCodec(embedder Embedder) *Codec {
	return &Codec{embedder: embedder}
}

// Encode invokes the embedding model once for the given text.
func (c *Codec) Encode(ctx context.Context, text string) (domain.Fingerprint, error) {
	vec, err := c.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
	}
	if len(vec) == 0 {
		return nil, fmt.Errorf("%w: empty vector", domain.ErrEmbeddingUnavailable)
	}
	return vec, nil
}

// Serialize writes the vector as consecutive little-endian float32 values.
func Serialize(fp domain.Fingerprint) []byte {
	buf := make([]byte, 4*len(fp))
	for i, v := range fp {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

// Deserialize is the exact inverse of Serialize. A blob whose length is not
// a positive multiple of four cannot be a fingerprint and is rejected rather
// than truncated.
func Deserialize(blob []byte) (domain.Fingerprint, error) {
	if len(blob) == 0 || len(blob)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", domain.ErrCorruptFingerprint, len(blob))
	}
	fp := make(domain.Fingerprint, len(blob)/4)
	for i := range fp {
		fp[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[4*i:]))
	}
	return fp, nil
}
