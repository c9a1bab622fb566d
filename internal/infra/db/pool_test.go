package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxConns(t *testing.T) {
	tests := []struct {
		workers int
		want    int32
	}{
		{0, 6},
		{1, 6},
		{5, 14},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, maxConns(tt.workers), "workers=%d", tt.workers)
	}
}

func TestNewPool_InvalidURL(t *testing.T) {
	_, err := NewPool(context.Background(), "postgres://%zz", 1)

	assert.ErrorContains(t, err, "parse database config")
}
