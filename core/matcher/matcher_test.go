package matcher

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"coursefinder-api/core/domain"
	coreerrors "coursefinder-api/core/errors"
	"coursefinder-api/infrastructure/embedding/hashing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// angle returns a unit vector at the given angle from the query vector {1, 0}
func angle(cos float64) []float32 {
	return []float32{float32(cos), float32(math.Sqrt(1 - cos*cos))}
}

func corpusOf(titles ...string) *domain.Corpus {
	courses := make([]domain.CourseRecord, len(titles))
	for i, title := range titles {
		courses[i] = domain.CourseRecord{
			Title:      title,
			CourseLink: fmt.Sprintf("https://example.test/%d", i),
			Platform:   "Test",
		}
	}
	return &domain.Corpus{Courses: courses, Generation: 1}
}

func resultTitles(results []domain.RankedResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Title
	}
	return out
}

func TestRank_EmptyCorpusSkipsEmbedding(t *testing.T) {
	embedder := &mockEmbedder{}
	m := New(embedder, nil, nil)

	for _, corpus := range []*domain.Corpus{nil, domain.EmptyCorpus()} {
		results, err := m.Rank(context.Background(), "anything", corpus)

		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	}
	assert.Empty(t, embedder.calls)
}

func TestRank_NilEmbedderIsUnavailable(t *testing.T) {
	m := New(nil, nil, nil)

	results, err := m.Rank(context.Background(), "python", corpusOf("Intro to Python"))

	assert.ErrorIs(t, err, coreerrors.ErrCapabilityUnavailable)
	assert.Empty(t, results)
}

func TestRank_EmbedErrorIsUnavailable(t *testing.T) {
	embedder := &mockEmbedder{embedFunc: func(context.Context, []string) ([][]float32, error) {
		return nil, errors.New("model server down")
	}}
	m := New(embedder, nil, nil)

	results, err := m.Rank(context.Background(), "python", corpusOf("Intro to Python"))

	assert.True(t, coreerrors.IsUnavailable(err))
	assert.ErrorContains(t, err, "model server down")
	assert.Empty(t, results)
}

func TestRank_VectorCountMismatch(t *testing.T) {
	embedder := &mockEmbedder{embedFunc: func(context.Context, []string) ([][]float32, error) {
		return [][]float32{{1, 0}}, nil
	}}
	m := New(embedder, nil, nil)

	_, err := m.Rank(context.Background(), "python", corpusOf("A course title", "Another title"))

	assert.True(t, coreerrors.IsUnavailable(err))
}

func TestRank_OrdersByDescendingScore(t *testing.T) {
	embedder := &mockEmbedder{vectors: map[string][]float32{
		"query":  {1, 0},
		"Low":    angle(0.2),
		"High":   angle(0.9),
		"Medium": angle(0.5),
	}}
	m := New(embedder, nil, nil)

	results, err := m.Rank(context.Background(), "query", corpusOf("Low", "High", "Medium"))

	require.NoError(t, err)
	assert.Equal(t, []string{"High", "Medium", "Low"}, resultTitles(results))
	assert.InDelta(t, 0.9, results[0].Score, 1e-6)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestRank_CapsAtEightUniqueTitles(t *testing.T) {
	titles := make([]string, 20)
	vectors := map[string][]float32{"query": {1, 0}}
	for i := range titles {
		titles[i] = fmt.Sprintf("Course %02d", i)
		vectors[titles[i]] = angle(float64(i+1) / 21)
	}
	m := New(&mockEmbedder{vectors: vectors}, nil, nil)

	results, err := m.Rank(context.Background(), "query", corpusOf(titles...))

	require.NoError(t, err)
	require.Len(t, results, 8)
	assert.Equal(t, "Course 19", results[0].Title)
	assert.Equal(t, "Course 12", results[7].Title)
}

func TestRank_DeduplicatesTitles(t *testing.T) {
	embedder := &mockEmbedder{vectors: map[string][]float32{
		"query": {1, 0},
		"Dup":   angle(0.8),
		"Solo":  angle(0.3),
	}}
	corpus := corpusOf("Dup", "Dup", "Solo", "Dup")
	corpus.Courses[1].Platform = "Second"

	results, err := New(embedder, nil, nil).Rank(context.Background(), "query", corpus)

	require.NoError(t, err)
	assert.Equal(t, []string{"Dup", "Solo"}, resultTitles(results))
	assert.Equal(t, "Test", results[0].Platform)
}

func TestRank_PoolLimitsCandidates(t *testing.T) {
	titles := make([]string, 0, 31)
	for i := 0; i < 30; i++ {
		titles = append(titles, "Repeated")
	}
	titles = append(titles, "Outside Pool")
	embedder := &mockEmbedder{vectors: map[string][]float32{
		"query":        {1, 0},
		"Repeated":     angle(0.9),
		"Outside Pool": angle(0.1),
	}}

	results, err := New(embedder, nil, nil).Rank(context.Background(), "query", corpusOf(titles...))

	require.NoError(t, err)
	assert.Equal(t, []string{"Repeated"}, resultTitles(results))
}

func TestRank_TiesKeepCorpusOrder(t *testing.T) {
	embedder := &mockEmbedder{vectors: map[string][]float32{
		"query":  {1, 0},
		"First":  angle(0.5),
		"Second": angle(0.5),
		"Third":  angle(0.5),
	}}

	results, err := New(embedder, nil, nil).Rank(context.Background(), "query", corpusOf("First", "Second", "Third"))

	require.NoError(t, err)
	assert.Equal(t, []string{"First", "Second", "Third"}, resultTitles(results))
}

func TestRank_ClampsNegativeScores(t *testing.T) {
	embedder := &mockEmbedder{vectors: map[string][]float32{
		"query":    {1, 0},
		"Opposite": {-1, 0},
		"Zero":     {0, 0},
	}}

	results, err := New(embedder, nil, nil).Rank(context.Background(), "query", corpusOf("Opposite", "Zero"))

	require.NoError(t, err)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 1.0)
	}
}

func TestRank_CachesTitleVectors(t *testing.T) {
	embedder := &mockEmbedder{vectors: map[string][]float32{
		"query": {1, 0},
		"A":     angle(0.7),
		"B":     angle(0.4),
	}}
	m := New(embedder, newMockCache(), nil)
	corpus := corpusOf("A", "B", "A")

	first, err := m.Rank(context.Background(), "query", corpus)
	require.NoError(t, err)
	second, err := m.Rank(context.Background(), "query", corpus)
	require.NoError(t, err)

	require.Len(t, embedder.calls, 2)
	assert.Equal(t, []string{"query", "A", "B"}, embedder.calls[0])
	assert.Equal(t, []string{"query"}, embedder.calls[1])
	assert.Equal(t, first, second)
}

func TestRank_IntroToPythonScenario(t *testing.T) {
	m := New(hashing.New(0), newMockCache(), nil)
	corpus := corpusOf("Intro to Python")

	results, err := m.Rank(context.Background(), "python", corpus)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Intro to Python", results[0].Title)
	assert.Greater(t, results[0].Score, 0.0)
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float32{1, 2}, []float32{2, 4}), 1e-9)
	assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Zero(t, Cosine([]float32{1}, []float32{1, 0}))
	assert.Zero(t, Cosine([]float32{0, 0}, []float32{1, 0}))
	assert.Zero(t, Cosine(nil, nil))
}

func TestVectorEncoding(t *testing.T) {
	v := []float32{0.25, -1.5, 3}

	assert.Equal(t, v, decodeVector(encodeVector(v)))
}
