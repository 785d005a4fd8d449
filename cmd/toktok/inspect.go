package main

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/emirpasic/gods/v2/queues/priorityqueue"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/born-ml/toktokenizer/internal/tokenizer"
)

const tokenColumnWidth = 40

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the longest tokens, or the most used tokens of a sample",
		Args:  cobra.NoArgs,
		RunE:  inspectHandler,
	}

	addMergesFlag(cmd)
	cmd.Flags().IntP("top", "k", 20, "Number of tokens to list")
	cmd.Flags().StringP("sample", "s", "", "Count token usage in this file instead")

	return cmd
}

func inspectHandler(cmd *cobra.Command, _ []string) error {
	tok, err := loadTokenizer(cmd)
	if err != nil {
		return err
	}

	top, _ := cmd.Flags().GetInt("top")
	sample, _ := cmd.Flags().GetString("sample")
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "vocab size %d, %d merges\n\n", tok.VocabSize(), tok.NumMerges())

	if sample == "" {
		renderTable(out, []string{"id", "bytes", "token"}, longestTokens(tok, top))
		return nil
	}

	data, err := os.ReadFile(sample) //nolint:gosec // G304: Path comes from the command line.
	if err != nil {
		return fmt.Errorf("failed to read sample: %w", err)
	}

	ids, err := tok.Encode(string(data))
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s: %d bytes -> %d tokens\n\n", sample, len(data), len(ids))
	renderTable(out, []string{"id", "count", "share", "token"}, frequentTokens(tok, ids, top))
	return nil
}

// longestTokens lists the k tokens with the most bytes, newest first on ties.
func longestTokens(tok *tokenizer.BasicTokenizer, k int) [][]string {
	ids := make([]int32, tok.VocabSize())
	for i := range ids {
		ids[i] = int32(i) //nolint:gosec // G115: vocabulary size is small.
	}

	slices.SortFunc(ids, func(a, b int32) int {
		ta, _ := tok.Token(a)
		tb, _ := tok.Token(b)
		if c := cmp.Compare(len(tb), len(ta)); c != 0 {
			return c
		}
		return cmp.Compare(b, a)
	})

	n := min(max(k, 0), len(ids))
	rows := make([][]string, 0, n)
	for _, id := range ids[:n] {
		b, _ := tok.Token(id)
		rows = append(rows, []string{strconv.Itoa(int(id)), strconv.Itoa(len(b)), renderToken(b)})
	}
	return rows
}

type tokenCount struct {
	id    int32
	count int
}

// frequentTokens lists the k most used tokens of ids.
func frequentTokens(tok *tokenizer.BasicTokenizer, ids []int32, k int) [][]string {
	counts := make(map[int32]int)
	for _, id := range ids {
		counts[id]++
	}

	pq := priorityqueue.NewWith[tokenCount](func(a, b tokenCount) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	for id, c := range counts {
		pq.Enqueue(tokenCount{id: id, count: c})
	}

	var rows [][]string
	for len(rows) < k {
		tc, ok := pq.Dequeue()
		if !ok {
			break
		}
		b, _ := tok.Token(tc.id)
		share := 100 * float64(tc.count) / float64(len(ids))
		rows = append(rows, []string{
			strconv.Itoa(int(tc.id)),
			strconv.Itoa(tc.count),
			strconv.FormatFloat(share, 'f', 2, 64) + "%",
			renderToken(b),
		})
	}
	return rows
}

// renderToken quotes b so control bytes stay visible and cuts it to fit a
// table column.
func renderToken(b []byte) string {
	return runewidth.Truncate(strconv.Quote(string(b)), tokenColumnWidth, "…")
}

func renderTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(rows)
	table.Render()
}
