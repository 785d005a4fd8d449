package tokenizer

// Tokenizer is the core interface for text tokenization.
//
// BasicTokenizer and TikToken both implement it, which lets the CLI compare a
// trained vocabulary against a published one.
type Tokenizer interface {
	// Encode converts text to token IDs.
	Encode(text string) ([]int32, error)

	// Decode converts token IDs back to text.
	Decode(tokens []int32) (string, error)

	// VocabSize returns the total vocabulary size.
	VocabSize() int

	// Name identifies the tokenizer in reports.
	Name() string
}

var (
	_ Tokenizer = (*BasicTokenizer)(nil)
	_ Tokenizer = (*TikToken)(nil)
)
