// ABOUTME: Local feature-hashing embedder using word and character trigram features
// ABOUTME: Needs no model download or network access, so search works out of the box

package hashing

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// DefaultDimensions is the vector size used when none is configured
const DefaultDimensions = 512

const (
	wordWeight    = 1.0
	trigramWeight = 0.5
)

// Embedder hashes word and character trigram features into a fixed-size vector.
// Similarity is lexical: titles match on shared words and spellings, not meaning.
// Semantic ranking needs the ollama or openai embedder (EMBEDDER=ollama|openai).
type Embedder struct {
	dims int
}

// New creates an Embedder with the given number of dimensions
func New(dims int) *Embedder {
	if dims <= 0 {
		dims = DefaultDimensions
	}
	return &Embedder{dims: dims}
}

// Model identifies the embedder and its dimensionality
func (e *Embedder) Model() string {
	return fmt.Sprintf("hashing-%d", e.dims)
}

// Embed returns one L2-normalized vector per text
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		vectors[i] = e.vector(text)
	}
	return vectors, nil
}

func (e *Embedder) vector(text string) []float32 {
	acc := make([]float64, e.dims)
	for _, word := range tokenize(text) {
		e.add(acc, "w:"+word, wordWeight)
		padded := []rune("#" + word + "#")
		for i := 0; i+3 <= len(padded); i++ {
			e.add(acc, "t:"+string(padded[i:i+3]), trigramWeight)
		}
	}

	var norm float64
	for _, x := range acc {
		norm += x * x
	}
	v := make([]float32, e.dims)
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	for i, x := range acc {
		v[i] = float32(x / norm)
	}
	return v
}

// add hashes a feature into a bucket; the sign bit spreads collisions around zero
func (e *Embedder) add(acc []float64, feature string, weight float64) {
	h := fnv.New64a()
	h.Write([]byte(feature))
	sum := h.Sum64()
	bucket := int(sum % uint64(e.dims))
	if sum>>63 == 1 {
		weight = -weight
	}
	acc[bucket] += weight
}

// tokenize lowercases text and splits it on anything that is not a letter or digit
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
