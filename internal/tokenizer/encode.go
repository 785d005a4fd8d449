package tokenizer

import (
	"math"

	"github.com/born-ml/toktokenizer/internal/parallel"
)

// Encode converts text to token IDs.
//
// It starts from the raw bytes and repeatedly applies the applicable merge
// with the lowest rank, everywhere it occurs, until no adjacent pair has a
// merge. Bytes never seen in training stay as their byte tokens. Encode never
// fails; the error is part of the Tokenizer interface.
func (t *BasicTokenizer) Encode(text string) ([]int32, error) {
	ids := make([]int32, len(text))
	for i := 0; i < len(text); i++ {
		ids[i] = int32(text[i])
	}

	for len(ids) >= 2 {
		best, id, ok := t.lowestRank(ids)
		if !ok {
			break
		}
		ids = Merge(ids, best, id)
	}

	return ids, nil
}

// lowestRank finds the adjacent pair in ids with the earliest learned merge.
func (t *BasicTokenizer) lowestRank(ids []int32) (Pair, int32, bool) {
	var best Pair
	bestRank := int32(math.MaxInt32)
	found := false

	for i := 0; i+1 < len(ids); i++ {
		p := Pair{ids[i], ids[i+1]}
		if rank, ok := t.merges.Rank(p); ok && rank < bestRank {
			best, bestRank, found = p, rank, true
		}
	}
	return best, bestRank, found
}

// EncodeBatch encodes each text independently. Texts are spread over the
// configured workers.
func (t *BasicTokenizer) EncodeBatch(texts []string) [][]int32 {
	out := make([][]int32, len(texts))
	parallel.For(len(texts), func(i int) {
		out[i], _ = t.Encode(texts[i])
	}, t.parallel)
	return out
}
