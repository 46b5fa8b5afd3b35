package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tieubaoca/docstudy-be/types"
)

func rankedIndices(chunks []types.Chunk) []int {
	indices := make([]int, 0, len(chunks))
	for _, ch := range chunks {
		indices = append(indices, ch.Index)
	}
	return indices
}

func TestTopK_RanksByScoreDescending(t *testing.T) {
	chunks := []types.Chunk{
		{Index: 0, Content: "zero"},
		{Index: 1, Content: "one"},
		{Index: 2, Content: "two"},
	}
	scored := []types.ChunkScore{
		{ChunkIndex: 0, Score: 0.1},
		{ChunkIndex: 1, Score: 0.9},
		{ChunkIndex: 2, Score: 0.5},
	}

	top := TopK(scored, chunks, 2)
	require.Len(t, top, 2)
	assert.Equal(t, []int{1, 2}, rankedIndices(top))
	assert.Equal(t, "one", top[0].Content)
}

func TestTopK_TieBreaksByIndex(t *testing.T) {
	chunks := []types.Chunk{
		{Index: 0}, {Index: 1}, {Index: 2},
	}
	scored := []types.ChunkScore{
		{ChunkIndex: 0, Score: 0.5},
		{ChunkIndex: 1, Score: 0.5},
		{ChunkIndex: 2, Score: 0.5},
	}

	top := TopK(scored, chunks, 2)
	assert.Equal(t, []int{0, 1}, rankedIndices(top))
}

func TestTopK_ZeroScoresStillReturned(t *testing.T) {
	chunks := []types.Chunk{
		{Index: 0, Content: "a"}, {Index: 1, Content: "b"}, {Index: 2, Content: "c"},
	}
	scored := []types.ChunkScore{
		{ChunkIndex: 0}, {ChunkIndex: 1}, {ChunkIndex: 2},
	}

	top := TopK(scored, chunks, 2)
	assert.Equal(t, []int{0, 1}, rankedIndices(top))
}

func TestTopK_KLargerThanChunkCount(t *testing.T) {
	chunks := []types.Chunk{{Index: 0}, {Index: 1}}
	scored := []types.ChunkScore{
		{ChunkIndex: 0, Score: 0.2},
		{ChunkIndex: 1, Score: 0.7},
	}

	top := TopK(scored, chunks, 10)
	assert.Equal(t, []int{1, 0}, rankedIndices(top))
}

func TestTopK_InvalidInput(t *testing.T) {
	chunks := []types.Chunk{{Index: 0}}
	scored := []types.ChunkScore{{ChunkIndex: 0, Score: 1}}

	assert.Nil(t, TopK(scored, chunks, 0))
	assert.Nil(t, TopK(scored, chunks, -1))
	assert.Nil(t, TopK(nil, chunks, 3))
}

func TestTopK_DoesNotMutateScores(t *testing.T) {
	chunks := []types.Chunk{{Index: 0}, {Index: 1}}
	scored := []types.ChunkScore{
		{ChunkIndex: 0, Score: 0.1},
		{ChunkIndex: 1, Score: 0.9},
	}

	TopK(scored, chunks, 2)
	assert.Equal(t, 0, scored[0].ChunkIndex)
	assert.Equal(t, 1, scored[1].ChunkIndex)
}
