package fingerprint

import (
	"math"

	"struggle-quiz-service/internal/domain"
)

// Score returns the cosine similarity of two fingerprints clamped to [0, 1].
// Anti-correlation carries no meaning for short definitional text, so
// negative similarity collapses to 0, as does any non-finite result (zero
// vectors, length mismatch). Callers never see NaN.
func Score(a, b domain.Fingerprint) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
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
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(sim) || math.IsInf(sim, 0) {
		return 0
	}
	return math.Max(0, math.Min(1, sim))
}

// Classify reports whether a score passes the given threshold.
func Classify(score, threshold float64) bool {
	return score >= threshold
}
