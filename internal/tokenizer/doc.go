// Package tokenizer implements a byte-level Byte-Pair-Encoding tokenizer.
//
// A BasicTokenizer starts from the 256 single-byte tokens and learns merges
// from a training corpus. Each training round counts adjacent token pairs,
// mints a new token for the most frequent one and rewrites the corpus with
// it. Encoding replays the learned merges in the order they were learned, so
// decoding an encoded text always returns the original.
//
// Example usage:
//
//	tok := tokenizer.New()
//	stats, err := tok.Train(corpus, 500, true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if stats.Stopped() {
//	    log.Printf("only %d merges learned", stats.Performed)
//	}
//
//	tokens, _ := tok.Encode("Hello, world!")
//	text, err := tok.Decode(tokens)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Persist and reload
//	if err := tok.Save("vocab.model", "merges.txt"); err != nil {
//	    log.Fatal(err)
//	}
//	tok, err = tokenizer.Load("merges.txt")
//
// TikToken wraps published OpenAI encodings behind the same Tokenizer
// interface for comparison.
package tokenizer
