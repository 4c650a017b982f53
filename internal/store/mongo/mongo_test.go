package mongo

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkIDs_Empty(t *testing.T) {
	assert.Nil(t, chunkIDs(nil))
	assert.Nil(t, chunkIDs([]string{}))
}

func TestChunkIDs_SingleChunk(t *testing.T) {
	ids := []string{"vodka", "lime", "mint"}
	chunks := chunkIDs(ids)
	require.Len(t, chunks, 1)
	assert.Equal(t, ids, chunks[0])
}

func TestChunkIDs_ExactLimit(t *testing.T) {
	ids := makeIDs(maxInClauseIDs)
	chunks := chunkIDs(ids)
	require.Len(t, chunks, 1)
	assert.Len(t, chunks[0], maxInClauseIDs)
}

func TestChunkIDs_SplitsAboveLimit(t *testing.T) {
	ids := makeIDs(maxInClauseIDs + 5)
	chunks := chunkIDs(ids)
	require.Len(t, chunks, 2)
	assert.Len(t, chunks[0], maxInClauseIDs)
	assert.Len(t, chunks[1], 5)

	// No IDs lost or reordered across the split.
	var flat []string
	for _, c := range chunks {
		flat = append(flat, c...)
	}
	assert.Equal(t, ids, flat)
}

func TestChunkIDs_MultipleFullChunks(t *testing.T) {
	ids := makeIDs(maxInClauseIDs * 3)
	chunks := chunkIDs(ids)
	require.Len(t, chunks, 3)
	for _, c := range chunks {
		assert.Len(t, c, maxInClauseIDs)
	}
}

func makeIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("ingredient-%02d", i)
	}
	return ids
}
