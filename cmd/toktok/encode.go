package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [TEXT...]",
		Short: "Convert text to token IDs",
		Long: `Encode TEXT, or standard input when it is piped, and print the token IDs.
With --file every file is encoded concurrently.`,
		RunE: encodeHandler,
	}

	addMergesFlag(cmd)
	cmd.Flags().StringSliceP("file", "f", nil, "Encode the contents of these files")
	cmd.Flags().Bool("count", false, "Print only the number of tokens")

	return cmd
}

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [ID...]",
		Short: "Convert token IDs back to text",
		Long:  "Decode whitespace separated token IDs given as arguments or piped on standard input.",
		RunE:  decodeHandler,
	}

	addMergesFlag(cmd)

	return cmd
}

func encodeHandler(cmd *cobra.Command, args []string) error {
	tok, err := loadTokenizer(cmd)
	if err != nil {
		return err
	}

	files, _ := cmd.Flags().GetStringSlice("file")
	countOnly, _ := cmd.Flags().GetBool("count")
	out := cmd.OutOrStdout()

	if len(files) > 0 {
		results := make([][]int32, len(files))

		var g errgroup.Group
		for i, path := range files {
			i, path := i, path
			g.Go(func() error {
				data, err := os.ReadFile(path) //nolint:gosec // G304: Path comes from the command line.
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				results[i], err = tok.Encode(string(data))
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i, path := range files {
			if countOnly {
				fmt.Fprintf(out, "%s\t%d\n", path, len(results[i]))
				continue
			}
			fmt.Fprintf(out, "%s\t%s\n", path, formatIDs(results[i]))
		}
		return nil
	}

	text, err := argsOrStdin(cmd, args)
	if err != nil {
		return err
	}

	ids, err := tok.Encode(text)
	if err != nil {
		return err
	}

	if countOnly {
		fmt.Fprintln(out, len(ids))
		return nil
	}
	fmt.Fprintln(out, formatIDs(ids))
	return nil
}

func decodeHandler(cmd *cobra.Command, args []string) error {
	tok, err := loadTokenizer(cmd)
	if err != nil {
		return err
	}

	input, err := argsOrStdin(cmd, args)
	if err != nil {
		return err
	}

	ids, err := parseIDs(input)
	if err != nil {
		return err
	}

	text, err := tok.Decode(ids)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

// argsOrStdin joins args, or reads standard input when no args are given and
// input is not an interactive terminal.
func argsOrStdin(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) { //nolint:gosec // G115: file descriptors fit in int.
		return "", errors.New("nothing to process: pass arguments or pipe input")
	}

	b, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(b), nil
}

func formatIDs(ids []int32) string {
	var sb strings.Builder
	for i, id := range ids {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatInt(int64(id), 10))
	}
	return sb.String()
}

func parseIDs(s string) ([]int32, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '[' || r == ']'
	})

	ids := make([]int32, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseInt(f, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid token id %q", f)
		}
		ids = append(ids, int32(n))
	}
	return ids, nil
}
