package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/born-ml/toktokenizer/internal/envconfig"
	"github.com/born-ml/toktokenizer/internal/tokenizer"
)

const defaultCorpus = "train.txt"

func newTrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train [CORPUS]",
		Short: "Learn a vocabulary from a text corpus",
		Long: `Learn BPE merges from a UTF-8 text corpus (default train.txt) and write
the vocabulary listing and the merges file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: trainHandler,
	}

	cmd.Flags().IntP("vocab-size", "n", int(envconfig.VocabSize()), "Total vocabulary size, at least 256") //nolint:gosec // G115: vocab size is small.
	cmd.Flags().Bool("verbose", true, "Log every merge")
	cmd.Flags().Int("min-frequency", 1, "Stop when the most frequent pair occurs fewer times")
	cmd.Flags().String("vocab-out", envconfig.VocabFile(), "Vocabulary listing destination")
	cmd.Flags().String("merges-out", envconfig.MergesFile(), "Merges file destination")

	return cmd
}

func trainHandler(cmd *cobra.Command, args []string) error {
	corpusPath := defaultCorpus
	if len(args) > 0 {
		corpusPath = args[0]
	}

	vocabSize, _ := cmd.Flags().GetInt("vocab-size")
	verbose, _ := cmd.Flags().GetBool("verbose")
	minFreq, _ := cmd.Flags().GetInt("min-frequency")
	vocabOut, _ := cmd.Flags().GetString("vocab-out")
	mergesOut, _ := cmd.Flags().GetString("merges-out")

	corpus, err := os.ReadFile(corpusPath) //nolint:gosec // G304: Path comes from the command line.
	if err != nil {
		return fmt.Errorf("failed to read corpus: %w", err)
	}

	tok := tokenizer.New(
		tokenizer.WithLogger(slog.Default()),
		tokenizer.WithMinFrequency(minFreq),
	)

	slog.Info("training", "corpus", corpusPath, "bytes", len(corpus), "vocab_size", vocabSize)
	stats, err := tok.Train(string(corpus), vocabSize, verbose)
	if err != nil {
		return err
	}

	if err := tok.Save(vocabOut, mergesOut); err != nil {
		return fmt.Errorf("could not save tokenizer: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "vocab=%d merges=%d/%d compression=%.2fx (%d bytes -> %d tokens)\n",
		tok.VocabSize(), stats.Performed, stats.Requested, stats.Compression(), stats.InputBytes, stats.OutputTokens)
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s and %s\n", vocabOut, mergesOut)
	return nil
}
