package tokenizer

import (
	"fmt"
	"unicode/utf8"
)

// Decode converts token IDs back to text.
//
// It fails with ErrInvalidEncoding when an ID is not in the vocabulary or the
// concatenated bytes are not valid UTF-8. Invalid bytes are reported, never
// replaced.
func (t *BasicTokenizer) Decode(tokens []int32) (string, error) {
	b, err := t.DecodeBytes(tokens)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: decoded bytes are not valid UTF-8", ErrInvalidEncoding)
	}
	return string(b), nil
}

// DecodeBytes concatenates the bytes of tokens without checking that they
// form valid text. Use it for partial sequences that may split a character.
func (t *BasicTokenizer) DecodeBytes(tokens []int32) ([]byte, error) {
	n := 0
	for _, id := range tokens {
		b, ok := t.vocab.Bytes(id)
		if !ok {
			return nil, fmt.Errorf("%w: token id %d not in vocabulary of %d", ErrInvalidEncoding, id, t.vocab.Len())
		}
		n += len(b)
	}

	out := make([]byte, 0, n)
	for _, id := range tokens {
		b, _ := t.vocab.Bytes(id)
		out = append(out, b...)
	}
	return out, nil
}
