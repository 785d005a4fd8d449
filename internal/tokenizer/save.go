package tokenizer

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Save writes the vocabulary and merges files.
//
// The vocabulary file has one "[id] -> (text)" line per token, with bytes
// that are not valid UTF-8 shown as U+FFFD. It is for reading, not loading.
// The merges file has one "[left][right] -> [id]" line per merge in learn
// order and can be read back with Load.
//
// Each file is written to a temporary sibling and renamed into place, so a
// failed save leaves any previous file intact.
func (t *BasicTokenizer) Save(vocabPath, mergesPath string) error {
	if err := writeFileAtomic(vocabPath, t.WriteVocab); err != nil {
		return err
	}
	return writeFileAtomic(mergesPath, t.WriteMerges)
}

// WriteVocab writes the vocabulary listing to w.
func (t *BasicTokenizer) WriteVocab(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for id, b := range t.vocab.tokens {
		if _, err := fmt.Fprintf(bw, "[%d] -> (%s)\n", id, bytes.ToValidUTF8(b, []byte("�"))); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// WriteMerges writes the merge rules to w in learn order.
func (t *BasicTokenizer) WriteMerges(w io.Writer) error {
	bw := bufio.NewWriter(w)
	var err error
	t.merges.Each(func(p Pair, id int32) {
		if err == nil {
			_, err = fmt.Fprintf(bw, "[%d][%d] -> [%d]\n", p.Left, p.Right, id)
		}
	})
	if err == nil {
		err = bw.Flush()
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

func writeFileAtomic(path string, write func(io.Writer) error) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrIO, path, err)
	}
	defer os.Remove(f.Name()) //nolint:errcheck // The temporary file is gone after a successful rename.

	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrIO, path, err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("%w: rename %s: %w", ErrIO, path, err)
	}
	return nil
}

// Load rebuilds a tokenizer from a merges file written by Save.
func Load(mergesPath string, opts ...Option) (*BasicTokenizer, error) {
	f, err := os.Open(mergesPath) //nolint:gosec // G304: Path comes from trusted caller.
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrIO, mergesPath, err)
	}
	defer f.Close()

	t, err := ReadMerges(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", mergesPath, err)
	}
	return t, nil
}

// ReadMerges replays merge lines from r. Minted IDs must be dense from 256
// and both halves of a pair must exist before the line that merges them.
func ReadMerges(r io.Reader, opts ...Option) (*BasicTokenizer, error) {
	t := New(opts...)

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		var p Pair
		var id int32
		if _, err := fmt.Sscanf(text, "[%d][%d] -> [%d]", &p.Left, &p.Right, &id); err != nil {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedMerges, line, text)
		}

		next := int32(t.vocab.Len()) //nolint:gosec // G115: vocabulary size is bounded well below 2^31.
		switch {
		case id != next:
			return nil, fmt.Errorf("%w: line %d: id %d, expected %d", ErrMalformedMerges, line, id, next)
		case p.Left < 0 || p.Left >= next || p.Right < 0 || p.Right >= next:
			return nil, fmt.Errorf("%w: line %d: pair %s refers to unknown ids", ErrMalformedMerges, line, p)
		}
		if _, dup := t.merges.Rank(p); dup {
			return nil, fmt.Errorf("%w: line %d: pair %s merged twice", ErrMalformedMerges, line, p)
		}

		t.merges.add(p, t.vocab.mint(p))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return t, nil
}
