package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAggregateSkipsFailures(t *testing.T) {
	results := []BenchResult{
		{Format: "jpg", Normalize: 10 * time.Millisecond, Predict: 100 * time.Millisecond, SizeIn: 2000, SizeOut: 1000},
		{Format: "jpg", Normalize: 30 * time.Millisecond, Predict: 300 * time.Millisecond, SizeIn: 4000, SizeOut: 2000},
		{Format: "png", Err: assert.AnError},
	}

	agg := aggregate(results)
	assert.Len(t, agg, 1)
	assert.Equal(t, 2, agg["jpg"].Count)
	assert.Equal(t, 40*time.Millisecond, agg["jpg"].Normalize)
	assert.Equal(t, int64(6000), agg["jpg"].TotalBytesIn)
}

func TestHumanBytes(t *testing.T) {
	assert.Equal(t, "512 B", humanBytes(512))
	assert.Equal(t, "1.50 KB", humanBytes(1536))
	assert.Equal(t, "2.00 MB", humanBytes(2<<20))
}
