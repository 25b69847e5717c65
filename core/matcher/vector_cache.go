// ABOUTME: Title vector cache keyed by embedding model and title
// ABOUTME: Stores vectors as little-endian float32 bytes in the shared cache

package matcher

import (
	"context"
	"encoding/binary"
	"math"
	"time"

	"coursefinder-api/core/interfaces"
)

type vectorCache struct {
	cache  interfaces.Cache
	ttl    time.Duration
	logger interfaces.Logger
}

func vectorKey(model, title string) string {
	return "vector:" + model + ":" + title
}

// get is safe on a nil receiver and reports a miss
func (c *vectorCache) get(ctx context.Context, model, title string) ([]float32, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.cache.Get(ctx, vectorKey(model, title))
	if err != nil || len(data) == 0 || len(data)%4 != 0 {
		return nil, false
	}
	return decodeVector(data), true
}

func (c *vectorCache) set(ctx context.Context, model, title string, v []float32) {
	if c == nil || len(v) == 0 {
		return
	}
	if err := c.cache.Set(ctx, vectorKey(model, title), encodeVector(v), c.ttl); err != nil {
		c.logger.Warn("Failed to cache title vector", map[string]interface{}{
			"title": title,
			"error": err.Error(),
		})
	}
}

func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(data []byte) []float32 {
	v := make([]float32, len(data)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[4*i:]))
	}
	return v
}
