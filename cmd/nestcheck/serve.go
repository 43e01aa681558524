package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/praetorian-inc/nestcheck/pkg/scanner"
	"github.com/praetorian-inc/nestcheck/pkg/serve"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as a streaming checker for editor integration",
	Long: `Run nestcheck as a long-lived streaming server that accepts check requests
via stdin and writes results to stdout using NDJSON.

Requests are {"type":"check","payload":{"content":...,"source":...}},
{"type":"check_batch","payload":{"items":[...]}},
{"type":"check_file","payload":{"path":...}}, {"type":"rules"} and
{"type":"close"}. An optional "id" is echoed in the response.
The process runs until stdin closes, a close request arrives, or SIGTERM is
received. Block comment and size settings come from the configuration.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// slogDebugLogger adapts the configured slog logger to scanner.DebugLogger.
type slogDebugLogger struct {
	log func(msg string, args ...any)
}

func (l slogDebugLogger) Log(format string, args ...interface{}) {
	l.log(fmt.Sprintf(format, args...))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return &exitError{code: exitFailure, err: fmt.Errorf("loading config: %w", err)}
	}
	logger := cfg.Log.NewLogger(cmd.ErrOrStderr())

	core, err := scanner.NewCoreWithOptions(scanner.Options{
		BlockComments: cfg.Check.BlockComments,
		MaxFileSize:   cfg.Check.MaxFileSize,
	}, slogDebugLogger{log: logger.Debug})
	if err != nil {
		return &exitError{code: exitFailure, err: err}
	}
	defer core.Close()

	// Set up signal handling
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer stop()

	logger.Info("serving", "protocol", serve.Version)
	srv := serve.NewServer(core, cmd.InOrStdin(), cmd.OutOrStdout())
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		return &exitError{code: exitFailure, err: err}
	}
	return nil
}
