package hashing

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func TestEmbed_Deterministic(t *testing.T) {
	e := New(0)

	first, err := e.Embed(context.Background(), []string{"Intro to Python"})
	require.NoError(t, err)
	second, err := e.Embed(context.Background(), []string{"Intro to Python"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first[0], DefaultDimensions)
	assert.Equal(t, "hashing-512", e.Model())
}

func TestEmbed_NormalizedVectors(t *testing.T) {
	vectors, err := New(128).Embed(context.Background(), []string{"Machine Learning", ""})
	require.NoError(t, err)
	require.Len(t, vectors, 2)

	assert.InDelta(t, 1.0, cosine(vectors[0], vectors[0]), 1e-6)
	for _, x := range vectors[1] {
		assert.Zero(t, x)
	}
}

func TestEmbed_SharedWordsScoreHigher(t *testing.T) {
	vectors, err := New(0).Embed(context.Background(), []string{
		"python",
		"Intro to Python",
		"Watercolor Painting Basics",
	})
	require.NoError(t, err)

	related := cosine(vectors[0], vectors[1])
	unrelated := cosine(vectors[0], vectors[2])

	assert.Greater(t, related, 0.0)
	assert.Greater(t, related, unrelated)
}

func TestEmbed_CaseInsensitive(t *testing.T) {
	vectors, err := New(0).Embed(context.Background(), []string{"DATA SCIENCE", "data science"})
	require.NoError(t, err)

	assert.Equal(t, vectors[0], vectors[1])
}

func TestEmbed_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(0).Embed(ctx, []string{"anything"})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"c", "for", "beginners", "2024"}, tokenize("C++ for Beginners (2024)"))
}
