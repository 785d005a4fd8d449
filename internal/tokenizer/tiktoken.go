package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

const (
	// encodingCL100kBase is the encoding name for GPT-4 and GPT-3.5-turbo.
	encodingCL100kBase = "cl100k_base"
	// encodingP50kBase is the encoding name for GPT-3.
	encodingP50kBase = "p50k_base"
	// encodingR50kBase is the encoding name for older GPT-3 models.
	encodingR50kBase = "r50k_base"
	// encodingO200kBase is the encoding name for GPT-4o.
	encodingO200kBase = "o200k_base"
)

// DefaultReferenceEncoding is the tiktoken encoding trained vocabularies are
// compared against.
const DefaultReferenceEncoding = encodingCL100kBase

// TikToken wraps the pkoukk/tiktoken-go library as a reference tokenizer.
//
// Encodings are fetched on first use and cached by tiktoken-go, so the first
// call may need network access.
type TikToken struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// NewTikToken creates a TikToken tokenizer with the specified encoding.
func NewTikToken(encodingName string) (*TikToken, error) {
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiktoken encoding %q: %w", encodingName, err)
	}

	return &TikToken{
		encoding: encoding,
		name:     encodingName,
	}, nil
}

// Encode converts text to token IDs.
func (t *TikToken) Encode(text string) ([]int32, error) {
	tokens := t.encoding.Encode(text, nil, nil)

	result := make([]int32, len(tokens))
	for i, tok := range tokens {
		result[i] = int32(tok) //nolint:gosec // G115: Token ID fits in int32 - vocab size < 2^31.
	}

	return result, nil
}

// Decode converts token IDs back to text.
func (t *TikToken) Decode(tokens []int32) (string, error) {
	intTokens := make([]int, len(tokens))
	for i, tok := range tokens {
		intTokens[i] = int(tok)
	}

	return t.encoding.Decode(intTokens), nil
}

// VocabSize returns the number of ordinary tokens in the encoding.
func (t *TikToken) VocabSize() int {
	switch t.name {
	case encodingO200kBase:
		return 199998
	case encodingCL100kBase:
		return 100256
	case encodingP50kBase:
		return 50281
	case encodingR50kBase:
		return 50257
	default:
		return 0
	}
}

// Name returns the encoding name.
func (t *TikToken) Name() string {
	return t.name
}
