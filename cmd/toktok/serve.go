package main

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/born-ml/toktokenizer/internal/envconfig"
	"github.com/born-ml/toktokenizer/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"start"},
		Short:   "Serve encode and decode over HTTP",
		Args:    cobra.NoArgs,
		RunE:    serveHandler,
	}

	addMergesFlag(cmd)

	return cmd
}

func serveHandler(cmd *cobra.Command, _ []string) error {
	tok, err := loadTokenizer(cmd)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", envconfig.Host())
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	return server.Serve(cmd.Context(), ln, tok)
}
