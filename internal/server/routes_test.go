package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/toktokenizer/internal/tokenizer"
	"github.com/born-ml/toktokenizer/internal/version"
)

const corpus = "low lower lowest newer newest wider widest"

func testServer(t *testing.T) (*tokenizer.BasicTokenizer, http.Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tok := tokenizer.New(tokenizer.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	_, err := tok.Train(corpus, 280, false)
	require.NoError(t, err)

	return tok, New(tok).GenerateRoutes()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRoutes_General(t *testing.T) {
	_, h := testServer(t)

	w := do(t, h, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "toktok is running", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	w = do(t, h, http.MethodGet, "/api/version", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"version":"`+version.Version+`"}`, w.Body.String())

	w = do(t, h, http.MethodDelete, "/api/info", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRoutes_RequestID(t *testing.T) {
	_, h := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestInfoHandler(t *testing.T) {
	tok, h := testServer(t)

	w := do(t, h, http.MethodGet, "/api/info", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp InfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, InfoResponse{Name: "basic", VocabSize: tok.VocabSize(), Merges: tok.NumMerges()}, resp)
}

func TestEncodeDecodeHandlers(t *testing.T) {
	tok, h := testServer(t)

	w := do(t, h, http.MethodPost, "/api/encode", EncodeRequest{Text: "lowest widest"})
	require.Equal(t, http.StatusOK, w.Code)

	var enc EncodeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &enc))
	want, _ := tok.Encode("lowest widest")
	assert.Equal(t, want, enc.Tokens)
	assert.Equal(t, len(want), enc.Count)

	w = do(t, h, http.MethodPost, "/api/decode", DecodeRequest{Tokens: enc.Tokens})
	require.Equal(t, http.StatusOK, w.Code)

	var dec DecodeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dec))
	assert.Equal(t, "lowest widest", dec.Text)
}

func TestEncodeHandler_Batch(t *testing.T) {
	tok, h := testServer(t)

	texts := []string{"newer", "wider", "low"}
	w := do(t, h, http.MethodPost, "/api/encode", EncodeRequest{Texts: texts})
	require.Equal(t, http.StatusOK, w.Code)

	var resp EncodeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Batch, len(texts))
	assert.Empty(t, resp.Tokens)

	total := 0
	for i, text := range texts {
		want, _ := tok.Encode(text)
		assert.Equal(t, want, resp.Batch[i])
		total += len(want)
	}
	assert.Equal(t, total, resp.Count)
}

func TestEncodeHandler_BadRequest(t *testing.T) {
	_, h := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/encode", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request")
}

func TestDecodeHandler_InvalidEncoding(t *testing.T) {
	_, h := testServer(t)

	tests := []struct {
		name   string
		tokens []int32
	}{
		{name: "unknown id", tokens: []int32{1 << 20}},
		{name: "invalid utf-8", tokens: []int32{0xff}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/api/decode", DecodeRequest{Tokens: tt.tokens})
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "invalid encoding")
		})
	}
}

func TestTokenHandler(t *testing.T) {
	tok, h := testServer(t)

	w := do(t, h, http.MethodGet, "/api/tokens/256", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	b, _ := tok.Token(256)
	assert.Equal(t, int32(256), resp.ID)
	assert.Equal(t, string(b), resp.Text)
	assert.Len(t, resp.Bytes, len(b))

	w = do(t, h, http.MethodGet, "/api/tokens/255", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []int{255}, resp.Bytes)
	assert.Equal(t, "�", resp.Text)

	w = do(t, h, http.MethodGet, "/api/tokens/99999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodGet, "/api/tokens/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
