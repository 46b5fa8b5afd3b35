package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tieubaoca/docstudy-be/types"
)

func catDogChunks() []types.Chunk {
	return []types.Chunk{
		{Index: 0, Content: "the cat sat"},
		{Index: 1, Content: "the dog ran"},
		{Index: 2, Content: "cats and dogs play"},
	}
}

func TestScoreChunks_RanksByRelevance(t *testing.T) {
	scores := ScoreChunks("cat", catDogChunks())
	require.Len(t, scores, 3)

	// Results come back in chunk index order.
	for i, s := range scores {
		assert.Equal(t, i, s.ChunkIndex)
	}

	// "the cat sat" tokenizes to [cat sat]: one match in two tokens.
	// "cat" appears in two of three chunks, so ICF is ln(1 + 3/3).
	assert.InDelta(t, 0.5*math.Ln2, scores[0].Score, 1e-9)
	assert.Greater(t, scores[0].Score, scores[2].Score)
	assert.Greater(t, scores[2].Score, 0.0)
	assert.Zero(t, scores[1].Score)
}

func TestScoreChunks_QueryWithNoTokens(t *testing.T) {
	for _, query := range []string{"", "   ", "the of and", "!?!"} {
		scores := ScoreChunks(query, catDogChunks())
		require.Len(t, scores, 3)
		for _, s := range scores {
			assert.Zero(t, s.Score)
		}
	}
}

func TestScoreChunks_NoChunks(t *testing.T) {
	assert.Empty(t, ScoreChunks("cat", nil))
}

func TestScoreChunks_TermFrequencyMonotonic(t *testing.T) {
	chunks := []types.Chunk{
		{Index: 0, Content: "apple apple pear plum"},
		{Index: 1, Content: "apple pear plum grape"},
	}
	scores := ScoreChunks("apple", chunks)
	require.Len(t, scores, 2)
	assert.Greater(t, scores[0].Score, scores[1].Score)
}

func TestScoreChunks_EmptyChunkContent(t *testing.T) {
	chunks := []types.Chunk{
		{Index: 0, Content: ""},
		{Index: 1, Content: "cat"},
	}
	scores := ScoreChunks("cat", chunks)
	require.Len(t, scores, 2)
	assert.Zero(t, scores[0].Score)
	assert.False(t, math.IsNaN(scores[0].Score))
	assert.Greater(t, scores[1].Score, 0.0)
}
