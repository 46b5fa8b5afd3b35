package service

import (
	"sort"

	"github.com/tieubaoca/docstudy-be/types"
)

// TopK ranks scored chunks descending by score with ties broken by
// ascending chunk index, then resolves the first min(k, N) back to full
// chunk records in ranked order. Most relevant first matters downstream:
// the assembler places the best material closest to the query.
//
// Chunks whose score is 0 still participate; a query sharing no
// vocabulary with the document returns the first k chunks by index
// rather than failing, and it is the generation gateway's job to answer
// "not found in document" when the context is useless.
func TopK(scored []types.ChunkScore, chunks []types.Chunk, k int) []types.Chunk {
	if k <= 0 || len(scored) == 0 {
		return nil
	}

	ranked := make([]types.ChunkScore, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ChunkIndex < ranked[j].ChunkIndex
	})

	if k > len(ranked) {
		k = len(ranked)
	}

	byIndex := make(map[int]types.Chunk, len(chunks))
	for _, ch := range chunks {
		byIndex[ch.Index] = ch
	}

	out := make([]types.Chunk, 0, k)
	for _, cs := range ranked[:k] {
		if ch, ok := byIndex[cs.ChunkIndex]; ok {
			out = append(out, ch)
		}
	}
	return out
}
