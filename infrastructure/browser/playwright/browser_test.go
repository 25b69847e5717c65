package playwright

import (
	"context"
	"testing"

	"coursefinder-api/core/interfaces"
	"github.com/stretchr/testify/assert"
)

var _ interfaces.Browser = (*Browser)(nil)

func TestToInt(t *testing.T) {
	cases := []struct {
		in   interface{}
		want int
	}{
		{in: 1200, want: 1200},
		{in: int64(800), want: 800},
		{in: float64(2048.7), want: 2048},
	}
	for _, tc := range cases {
		got, err := toInt(tc.in)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := toInt("tall")
	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	b := New(Options{}, nil)

	assert.Equal(t, float64(30000), b.opts.NavigationTimeout)
	assert.NoError(t, b.Close())
}

func TestOpen_CancelledContextDoesNotLaunch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := New(Options{}, nil)

	_, err := b.Open(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, b.pw)
}
