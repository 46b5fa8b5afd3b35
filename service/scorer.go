package service

import (
	"math"

	"github.com/tieubaoca/docstudy-be/types"
)

// ScoreChunks computes a relevance score for every chunk against the
// query using term frequency weighted by inverse chunk frequency. The
// document's own chunks act as the corpus, so no external statistics
// are needed:
//
//	TF(token, chunk)  = occurrences / chunk token count
//	ICF(token)        = ln(1 + N / (1 + df))
//	score(chunk)      = sum over query tokens of TF * ICF
//
// A query with no tokens after normalization scores every chunk 0. Zero
// chunks yield an empty result. Scores are returned in ascending chunk
// index order; ranking is the retriever's job.
func ScoreChunks(query string, chunks []types.Chunk) []types.ChunkScore {
	if len(chunks) == 0 {
		return nil
	}

	scores := make([]types.ChunkScore, len(chunks))
	for i := range chunks {
		scores[i] = types.ChunkScore{ChunkIndex: chunks[i].Index}
	}

	queryTokens := Normalize(query)
	if len(queryTokens) == 0 {
		return scores
	}

	// Token counts per chunk, computed once per request.
	counts := make([]map[string]int, len(chunks))
	totals := make([]int, len(chunks))
	for i := range chunks {
		tokens := Normalize(chunks[i].Content)
		m := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			m[tok]++
		}
		counts[i] = m
		totals[i] = len(tokens)
	}

	n := float64(len(chunks))
	icfCache := make(map[string]float64, len(queryTokens))
	for _, tok := range queryTokens {
		icf, ok := icfCache[tok]
		if !ok {
			df := 0
			for i := range chunks {
				if counts[i][tok] > 0 {
					df++
				}
			}
			icf = math.Log(1 + n/(1+float64(df)))
			icfCache[tok] = icf
		}
		for i := range chunks {
			if totals[i] == 0 {
				continue
			}
			tf := float64(counts[i][tok]) / float64(totals[i])
			scores[i].Score += tf * icf
		}
	}

	return scores
}
