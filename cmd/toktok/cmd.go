package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/born-ml/toktokenizer/internal/envconfig"
	"github.com/born-ml/toktokenizer/internal/parallel"
	"github.com/born-ml/toktokenizer/internal/tokenizer"
	"github.com/born-ml/toktokenizer/internal/version"
)

// NewCLI builds the root command.
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "toktok",
		Short:         "Byte-level BPE tokenizer trainer",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: envconfig.LogLevel(),
			})))
		},
		Run: func(cmd *cobra.Command, args []string) {
			if v, _ := cmd.Flags().GetBool("version"); v {
				versionHandler(cmd, args)
				return
			}

			cmd.Print(cmd.UsageString())
		},
	}

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	trainCmd := newTrainCmd()
	encodeCmd := newEncodeCmd()
	decodeCmd := newDecodeCmd()
	inspectCmd := newInspectCmd()
	compareCmd := newCompareCmd()
	serveCmd := newServeCmd()

	envVars := envconfig.AsMap()
	for _, c := range []*cobra.Command{encodeCmd, decodeCmd, inspectCmd, compareCmd} {
		appendEnvDocs(c, []envconfig.EnvVar{envVars["TOKTOK_MERGES_FILE"], envVars["TOKTOK_NUM_PARALLEL"], envVars["TOKTOK_DEBUG"]})
	}
	appendEnvDocs(trainCmd, []envconfig.EnvVar{
		envVars["TOKTOK_VOCAB_SIZE"],
		envVars["TOKTOK_VOCAB_FILE"],
		envVars["TOKTOK_MERGES_FILE"],
		envVars["TOKTOK_DEBUG"],
	})
	appendEnvDocs(serveCmd, []envconfig.EnvVar{
		envVars["TOKTOK_HOST"],
		envVars["TOKTOK_ORIGINS"],
		envVars["TOKTOK_MERGES_FILE"],
		envVars["TOKTOK_NUM_PARALLEL"],
		envVars["TOKTOK_DEBUG"],
	})

	rootCmd.AddCommand(
		trainCmd,
		encodeCmd,
		decodeCmd,
		inspectCmd,
		compareCmd,
		serveCmd,
		&cobra.Command{
			Use:   "version",
			Short: "Show version information",
			Args:  cobra.NoArgs,
			Run:   versionHandler,
		},
	)

	return rootCmd
}

func versionHandler(cmd *cobra.Command, _ []string) {
	fmt.Fprintf(cmd.OutOrStdout(), "toktok version %s\n", version.Version)
}

func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString("\nEnvironment Variables:\n")
	for _, e := range envs {
		fmt.Fprintf(&sb, "      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + sb.String())
}

// addMergesFlag registers the --merges flag shared by every command that
// loads a trained tokenizer.
func addMergesFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("merges", "m", envconfig.MergesFile(), "Merges file written by train")
}

func loadTokenizer(cmd *cobra.Command) (*tokenizer.BasicTokenizer, error) {
	path, _ := cmd.Flags().GetString("merges")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no trained tokenizer at %s, run 'toktok train' first: %w", path, err)
	}

	tok, err := tokenizer.Load(path,
		tokenizer.WithLogger(slog.Default()),
		tokenizer.WithParallel(parallel.Workers(int(envconfig.NumParallel()))), //nolint:gosec // G115: worker count is small.
	)
	if err != nil {
		return nil, err
	}

	slog.Debug("loaded tokenizer", "path", path, "vocab_size", tok.VocabSize(), "merges", tok.NumMerges())
	return tok, nil
}
