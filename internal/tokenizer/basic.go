package tokenizer

import (
	"log/slog"

	"github.com/born-ml/toktokenizer/internal/parallel"
)

// BasicTokenizer is a byte-level BPE tokenizer trained on raw text.
//
// A BasicTokenizer owns its Vocabulary and MergeTable. Only Train changes
// them; Encode, Decode and the persistence methods read them and are safe to
// call from several goroutines once training has finished.
type BasicTokenizer struct {
	vocab  *Vocabulary
	merges *MergeTable

	logger   *slog.Logger
	minFreq  int
	parallel parallel.Config
}

// Option configures a BasicTokenizer.
type Option func(*BasicTokenizer)

// WithLogger sets the logger used for training progress.
func WithLogger(l *slog.Logger) Option {
	return func(t *BasicTokenizer) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMinFrequency stops training once the most frequent pair occurs fewer
// than n times. The default of 1 merges until no pair is left.
func WithMinFrequency(n int) Option {
	return func(t *BasicTokenizer) {
		t.minFreq = n
	}
}

// WithParallel sets the worker configuration used by EncodeBatch.
func WithParallel(cfg parallel.Config) Option {
	return func(t *BasicTokenizer) {
		t.parallel = cfg
	}
}

// New returns an untrained tokenizer that knows only the 256 byte tokens.
func New(opts ...Option) *BasicTokenizer {
	t := &BasicTokenizer{
		vocab:    NewVocabulary(),
		merges:   NewMergeTable(),
		logger:   slog.Default(),
		minFreq:  1,
		parallel: parallel.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Vocabulary returns the token table.
func (t *BasicTokenizer) Vocabulary() *Vocabulary {
	return t.vocab
}

// Merges returns the learned merge rules.
func (t *BasicTokenizer) Merges() *MergeTable {
	return t.merges
}

// Token returns the bytes of token id.
func (t *BasicTokenizer) Token(id int32) ([]byte, bool) {
	return t.vocab.Bytes(id)
}

// VocabSize returns the total vocabulary size.
func (t *BasicTokenizer) VocabSize() int {
	return t.vocab.Len()
}

// NumMerges returns the number of learned merges.
func (t *BasicTokenizer) NumMerges() int {
	return t.merges.Len()
}

// Name returns the tokenizer name.
func (t *BasicTokenizer) Name() string {
	return "basic"
}
