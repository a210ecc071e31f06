package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"docquery/internal/answer"
	"docquery/internal/logger"
	"docquery/internal/mcpserver"
)

// NewMCPCmd creates the 'mcp' command which serves tools over stdio.
func NewMCPCmd(version string) *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run an MCP server (stdio) exposing answer_query and regex_search",
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol, so logs go to stderr.
			log := logger.New(logger.Config{Level: logLevel, Output: cmd.ErrOrStderr()})
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			engine := answer.New(answer.WithMonitor(log.AnswerMonitor()))
			log.Info().Str("version", version).Msg("mcp server starting")
			return mcpserver.Run(ctx, mcpserver.New(engine, version))
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level for stderr output")
	return cmd
}
