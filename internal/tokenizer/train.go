package tokenizer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
)

// TrainStats summarizes a training run.
type TrainStats struct {
	Requested    int // Merges asked for (vocabSize - 256).
	Performed    int // Merges actually learned.
	InputBytes   int // Length of the corpus in bytes.
	OutputTokens int // Length of the corpus in tokens after the last merge.
}

// Stopped reports whether training ran out of pairs before the requested
// number of merges.
func (s TrainStats) Stopped() bool {
	return s.Performed < s.Requested
}

// Compression returns the ratio of corpus bytes to trained tokens.
func (s TrainStats) Compression() float64 {
	if s.OutputTokens == 0 {
		return 0
	}
	return float64(s.InputBytes) / float64(s.OutputTokens)
}

// Train learns vocabSize-256 merges from corpus, replacing anything learned
// before. Each round merges the most frequent adjacent pair; ties go to the
// smallest pair. Training stops early, without error, when no pair occurs
// often enough to merge.
//
// With verbose set every merge is logged at info level, otherwise at debug.
func (t *BasicTokenizer) Train(corpus string, vocabSize int, verbose bool) (TrainStats, error) {
	if vocabSize < numBytes {
		return TrainStats{}, fmt.Errorf("%w: vocab size %d is below the %d byte tokens", ErrInvalidConfiguration, vocabSize, numBytes)
	}
	if t.minFreq < 1 {
		return TrainStats{}, fmt.Errorf("%w: min frequency %d must be at least 1", ErrInvalidConfiguration, t.minFreq)
	}

	level := slog.LevelDebug
	if verbose {
		level = slog.LevelInfo
	}

	ids := make([]int32, len(corpus))
	for i := 0; i < len(corpus); i++ {
		ids[i] = int32(corpus[i])
	}

	vocab := NewVocabulary()
	merges := NewMergeTable()
	stats := TrainStats{
		Requested:  vocabSize - numBytes,
		InputBytes: len(corpus),
	}

	for round := 0; round < stats.Requested; round++ {
		best, count := mostFrequent(CountPairs(ids))
		if count < t.minFreq {
			break
		}

		id := vocab.mint(best)
		ids = Merge(ids, best, id)
		merges.add(best, id)
		stats.Performed++

		token, _ := vocab.Bytes(id)
		t.logger.Log(context.Background(), level, "merge",
			"round", round+1,
			"total", stats.Requested,
			"percent", strconv.FormatFloat(100*float64(round+1)/float64(stats.Requested), 'f', 1, 64),
			"pair", best.String(),
			"id", id,
			"count", count,
			"token", strconv.Quote(string(bytes.ToValidUTF8(token, []byte("�")))))
	}

	stats.OutputTokens = len(ids)
	t.vocab, t.merges = vocab, merges

	if stats.Stopped() {
		t.logger.Warn("training stopped early, no pair frequent enough to merge",
			"requested", stats.Requested,
			"performed", stats.Performed,
			"vocab_size", vocab.Len())
	}
	return stats, nil
}
