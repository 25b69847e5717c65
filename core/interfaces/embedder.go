// ABOUTME: Embedder interface for turning text into fixed-dimensional vectors
// ABOUTME: Query and course titles must be embedded by the same implementation

package interfaces

import "context"

// Embedder maps texts into a shared vector space
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Model identifies the embedding model; vectors from different models are not comparable.
	Model() string
}
