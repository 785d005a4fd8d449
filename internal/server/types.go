package server

// EncodeRequest asks for one text, or a batch of texts, to be encoded.
type EncodeRequest struct {
	Text  string   `json:"text"`
	Texts []string `json:"texts,omitempty"`
}

// EncodeResponse carries the tokens of an EncodeRequest. Batch is set only
// when the request used Texts.
type EncodeResponse struct {
	Tokens []int32   `json:"tokens,omitempty"`
	Batch  [][]int32 `json:"batch,omitempty"`
	Count  int       `json:"count"`
}

// DecodeRequest asks for token IDs to be turned back into text.
type DecodeRequest struct {
	Tokens []int32 `json:"tokens"`
}

// DecodeResponse is the decoded text.
type DecodeResponse struct {
	Text string `json:"text"`
}

// TokenResponse describes one vocabulary entry.
type TokenResponse struct {
	ID    int32  `json:"id"`
	Bytes []int  `json:"bytes"`
	Text  string `json:"text"`
}

// InfoResponse describes the loaded tokenizer.
type InfoResponse struct {
	Name      string `json:"name"`
	VocabSize int    `json:"vocab_size"`
	Merges    int    `json:"merges"`
}
