package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/born-ml/toktokenizer/internal/tokenizer"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare FILE...",
		Short: "Compare token counts against a tiktoken encoding",
		Long: `Encode each FILE with the trained tokenizer and with a published tiktoken
encoding, and report token counts and bytes per token. The tiktoken encoding is
downloaded on first use.`,
		Args: cobra.MinimumNArgs(1),
		RunE: compareHandler,
	}

	addMergesFlag(cmd)
	cmd.Flags().StringP("encoding", "e", tokenizer.DefaultReferenceEncoding, "tiktoken encoding to compare against")

	return cmd
}

func compareHandler(cmd *cobra.Command, args []string) error {
	tok, err := loadTokenizer(cmd)
	if err != nil {
		return err
	}

	encoding, _ := cmd.Flags().GetString("encoding")
	ref, err := tokenizer.NewTikToken(encoding)
	if err != nil {
		return err
	}

	rows, err := compareRows([]tokenizer.Tokenizer{tok, ref}, args)
	if err != nil {
		return err
	}

	renderTable(cmd.OutOrStdout(), []string{"file", "tokenizer", "vocab", "bytes", "tokens", "bytes/token"}, rows)
	return nil
}

func compareRows(toks []tokenizer.Tokenizer, paths []string) ([][]string, error) {
	var rows [][]string
	for _, path := range paths {
		data, err := os.ReadFile(path) //nolint:gosec // G304: Path comes from the command line.
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		for _, t := range toks {
			ids, err := t.Encode(string(data))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", t.Name(), err)
			}

			ratio := 0.0
			if len(ids) > 0 {
				ratio = float64(len(data)) / float64(len(ids))
			}
			rows = append(rows, []string{
				path,
				t.Name(),
				strconv.Itoa(t.VocabSize()),
				strconv.Itoa(len(data)),
				strconv.Itoa(len(ids)),
				strconv.FormatFloat(ratio, 'f', 2, 64),
			})
		}
	}
	return rows, nil
}
