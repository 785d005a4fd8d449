package tokenizer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave(t *testing.T) {
	tok := trained(t, trainCorpus, 260)

	dir := t.TempDir()
	vocabPath := filepath.Join(dir, "vocab.model")
	mergesPath := filepath.Join(dir, "merges.txt")
	require.NoError(t, tok.Save(vocabPath, mergesPath))

	merges, err := os.ReadFile(mergesPath)
	require.NoError(t, err)
	assert.Equal(t, "[97][97] -> [256]\n[97][98] -> [257]\n[256][257] -> [258]\n[97][99] -> [259]\n", string(merges))

	vocab, err := os.ReadFile(vocabPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(vocab), "[0] -> (\x00)\n[1] -> (\x01)\n"))
	assert.Contains(t, string(vocab), "[97] -> (a)\n")
	assert.Contains(t, string(vocab), "[255] -> (�)\n")
	assert.True(t, strings.HasSuffix(string(vocab), "[258] -> (aaab)\n[259] -> (ac)\n"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "temporary files left behind")
}

func TestSave_Overwrites(t *testing.T) {
	dir := t.TempDir()
	mergesPath := filepath.Join(dir, "merges.txt")
	require.NoError(t, os.WriteFile(mergesPath, []byte("stale"), 0o600))

	tok := trained(t, "ab", 257)
	require.NoError(t, tok.Save(filepath.Join(dir, "vocab.model"), mergesPath))

	got, err := os.ReadFile(mergesPath)
	require.NoError(t, err)
	assert.Equal(t, "[97][98] -> [256]\n", string(got))
}

func TestSave_IOFailure(t *testing.T) {
	tok := trained(t, trainCorpus, 260)
	missing := filepath.Join(t.TempDir(), "missing", "dir")

	err := tok.Save(filepath.Join(missing, "vocab.model"), filepath.Join(missing, "merges.txt"))
	require.ErrorIs(t, err, ErrIO)

	assert.Equal(t, 260, tok.VocabSize())
	assert.Equal(t, 4, tok.NumMerges())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWrite_IOFailure(t *testing.T) {
	tok := trained(t, trainCorpus, 260)
	require.ErrorIs(t, tok.WriteVocab(failingWriter{}), ErrIO)
	require.ErrorIs(t, tok.WriteMerges(failingWriter{}), ErrIO)
}

func TestLoad_RoundTrip(t *testing.T) {
	tok := trained(t, roundTripCorpus, 400)

	dir := t.TempDir()
	mergesPath := filepath.Join(dir, "merges.txt")
	require.NoError(t, tok.Save(filepath.Join(dir, "vocab.model"), mergesPath))

	loaded, err := Load(mergesPath)
	require.NoError(t, err)
	assert.Equal(t, tok.VocabSize(), loaded.VocabSize())
	assert.Equal(t, tok.NumMerges(), loaded.NumMerges())

	for id := int32(0); id < int32(tok.VocabSize()); id++ {
		want, _ := tok.Token(id)
		got, ok := loaded.Token(id)
		require.True(t, ok)
		assert.Equal(t, want, got, "token %d", id)
	}

	want, _ := tok.Encode(roundTripCorpus)
	got, _ := loaded.Encode(roundTripCorpus)
	assert.Equal(t, want, got)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.ErrorIs(t, err, ErrIO)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadMerges(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantErr   error
		vocabSize int
	}{
		{name: "empty", input: "", vocabSize: 256},
		{name: "blank lines", input: "\n[97][98] -> [256]\n\n", vocabSize: 257},
		{name: "chained", input: "[97][98] -> [256]\n[256][256] -> [257]\n", vocabSize: 258},
		{name: "garbage", input: "97 98 256\n", wantErr: ErrMalformedMerges},
		{name: "gap in ids", input: "[97][98] -> [257]\n", wantErr: ErrMalformedMerges},
		{name: "forward reference", input: "[97][256] -> [256]\n", wantErr: ErrMalformedMerges},
		{name: "negative id", input: "[-1][98] -> [256]\n", wantErr: ErrMalformedMerges},
		{name: "duplicate pair", input: "[97][98] -> [256]\n[97][98] -> [257]\n", wantErr: ErrMalformedMerges},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := ReadMerges(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, tok)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.vocabSize, tok.VocabSize())
		})
	}
}

func TestWriteMerges_ReadMerges(t *testing.T) {
	tok := trained(t, "hello hello world, hello there", 280)

	var buf bytes.Buffer
	require.NoError(t, tok.WriteMerges(&buf))

	loaded, err := ReadMerges(&buf)
	require.NoError(t, err)

	ids, _ := loaded.Encode("hello there, world")
	text, err := loaded.Decode(ids)
	require.NoError(t, err)
	assert.Equal(t, "hello there, world", text)
}
