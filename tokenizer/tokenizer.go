// Package tokenizer provides a trainable byte-level BPE tokenizer.
//
// This package wraps the internal tokenizer implementation and provides
// a clean public API for training, encoding, decoding and persistence.
//
// Example usage:
//
//	import "github.com/born-ml/toktokenizer/tokenizer"
//
//	tok := tokenizer.New()
//	if _, err := tok.Train(corpus, 500, false); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Encode text
//	tokens, _ := tok.Encode("Hello, world!")
//
//	// Decode tokens
//	text, err := tok.Decode(tokens)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Save, then reload from the merges file
//	if err := tok.Save("vocab.model", "merges.txt"); err != nil {
//	    log.Fatal(err)
//	}
//	tok, err = tokenizer.Load("merges.txt")
package tokenizer

import (
	"io"

	"github.com/born-ml/toktokenizer/internal/parallel"
	"github.com/born-ml/toktokenizer/internal/tokenizer"
)

// Tokenizer is the core interface for text tokenization.
type Tokenizer = tokenizer.Tokenizer

// BasicTokenizer is a byte-level BPE tokenizer trained on raw text.
type BasicTokenizer = tokenizer.BasicTokenizer

// Option configures a BasicTokenizer.
type Option = tokenizer.Option

// TrainStats summarizes a training run.
type TrainStats = tokenizer.TrainStats

// Pair is two adjacent token IDs.
type Pair = tokenizer.Pair

// Errors returned by training, decoding and persistence.
var (
	ErrInvalidConfiguration = tokenizer.ErrInvalidConfiguration
	ErrInvalidEncoding      = tokenizer.ErrInvalidEncoding
	ErrIO                   = tokenizer.ErrIO
	ErrMalformedMerges      = tokenizer.ErrMalformedMerges
)

// Options.
var (
	WithLogger       = tokenizer.WithLogger
	WithMinFrequency = tokenizer.WithMinFrequency
	WithParallel     = tokenizer.WithParallel
)

// New returns an untrained tokenizer that knows only the 256 byte tokens.
func New(opts ...Option) *BasicTokenizer {
	return tokenizer.New(opts...)
}

// Load rebuilds a tokenizer from a merges file written by Save.
func Load(mergesPath string, opts ...Option) (*BasicTokenizer, error) {
	return tokenizer.Load(mergesPath, opts...)
}

// ReadMerges rebuilds a tokenizer from merge lines.
func ReadMerges(r io.Reader, opts ...Option) (*BasicTokenizer, error) {
	return tokenizer.ReadMerges(r, opts...)
}

// NewTikToken creates a reference tokenizer for a published tiktoken encoding
// such as "cl100k_base".
func NewTikToken(encodingName string) (Tokenizer, error) {
	tok, err := tokenizer.NewTikToken(encodingName)
	if err != nil {
		return nil, err
	}
	return tok, nil
}

// ParallelConfig controls how EncodeBatch spreads work.
type ParallelConfig = parallel.Config

// Workers returns a ParallelConfig with n workers.
func Workers(n int) ParallelConfig {
	return parallel.Workers(n)
}
