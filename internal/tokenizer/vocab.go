package tokenizer

// numBytes is the size of the base byte alphabet.
const numBytes = 256

// Vocabulary maps dense token IDs to the bytes they stand for.
//
// IDs 0..255 are the single bytes of the same value. Every later ID is the
// concatenation of the two IDs it was merged from, built when it is minted
// so that decoding is a plain slice lookup.
type Vocabulary struct {
	tokens [][]byte
}

// NewVocabulary returns a vocabulary holding only the 256 byte tokens.
func NewVocabulary() *Vocabulary {
	v := &Vocabulary{tokens: make([][]byte, numBytes)}
	for i := 0; i < numBytes; i++ {
		v.tokens[i] = []byte{byte(i)}
	}
	return v
}

// Len returns the number of tokens.
func (v *Vocabulary) Len() int {
	return len(v.tokens)
}

// Bytes returns the bytes of token id. The returned slice must not be modified.
func (v *Vocabulary) Bytes(id int32) ([]byte, bool) {
	if id < 0 || int(id) >= len(v.tokens) {
		return nil, false
	}
	return v.tokens[id], true
}

// mint appends the token for p and returns its ID. Both halves of p must
// already be in the vocabulary.
func (v *Vocabulary) mint(p Pair) int32 {
	left, right := v.tokens[p.Left], v.tokens[p.Right]
	b := make([]byte, 0, len(left)+len(right))
	b = append(b, left...)
	b = append(b, right...)

	id := int32(len(v.tokens)) //nolint:gosec // G115: vocabulary size is bounded well below 2^31.
	v.tokens = append(v.tokens, b)
	return id
}
