package fingerprint_test

import (
	"context"
	"errors"
	"testing"

	"struggle-quiz-service/internal/domain"
	"struggle-quiz-service/internal/fingerprint"
	"struggle-quiz-service/internal/infra/memory"
)

func TestSerializeRoundTrip(t *testing.T) {
	codec := fingerprint.NewCodec(memory.NewEmbedder(32))

	fp, err := codec.Encode(context.Background(), "a small furry animal")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := fingerprint.Deserialize(fingerprint.Serialize(fp))
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if len(got) != len(fp) {
		t.Fatalf("expected %d elements, got %d", len(fp), len(got))
	}
	for i := range fp {
		if got[i] != fp[i] {
			t.Fatalf("element %d: expected %v, got %v", i, fp[i], got[i])
		}
	}
}

func TestDeserializeRejectsCorruptBlobs(t *testing.T) {
	for _, blob := range [][]byte{nil, {}, {1, 2, 3}, make([]byte, 7)} {
		if _, err := fingerprint.Deserialize(blob); !errors.Is(err, domain.ErrCorruptFingerprint) {
			t.Fatalf("blob of %d bytes: expected ErrCorruptFingerprint, got %v", len(blob), err)
		}
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	codec := fingerprint.NewCodec(memory.NewEmbedder(32))

	first, err := codec.Encode(context.Background(), "يوم good day")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	second, err := codec.Encode(context.Background(), "يوم good day")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if fingerprint.Score(first, second) != 1 {
		t.Fatalf("expected identical encodings, score %v", fingerprint.Score(first, second))
	}
}

func TestEncodeWrapsEmbedderFailure(t *testing.T) {
	codec := fingerprint.NewCodec(failingEmbedder{})
	if _, err := codec.Encode(context.Background(), "anything"); !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		t.Fatalf("expected ErrEmbeddingUnavailable, got %v", err)
	}
}

type failingEmbedder struct{}

func (failingEmbedder) Embed(context.Context, string) (domain.Fingerprint, error) {
	return nil, errors.New("model down")
}
