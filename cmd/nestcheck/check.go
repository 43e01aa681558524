package main

import (
	"context"
	"fmt"

	"github.com/praetorian-inc/nestcheck/pkg/checker"
	"github.com/spf13/cobra"
)

var (
	checkFormat        string
	checkColor         string
	checkBlockComments bool
	checkMaxFileSize   int64
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Check bracket nesting in a file",
	Long: `Check that every {, [ and ( in a file is closed by the matching }, ] or )
in the right order. Scanning stops at the first problem.

Exit status is 0 when the structure is valid, 1 when a structural problem is
found, and 2 when the file cannot be read or the configuration is invalid.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	registerCheckFlags(checkCmd)
}

func registerCheckFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&checkFormat, "format", "human", "Output format: human, json, yaml, sarif")
	cmd.Flags().StringVar(&checkColor, "color", "auto", "Color output: auto, always, never")
	cmd.Flags().BoolVar(&checkBlockComments, "block-comments", false, "Ignore brackets inside /* ... */ comments")
	cmd.Flags().Int64Var(&checkMaxFileSize, "max-file-size", 10*1024*1024, "Maximum file size to check (bytes, 0 for no limit)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return &exitError{code: exitFailure, err: fmt.Errorf("loading config: %w", err)}
	}
	logger := cfg.Log.NewLogger(cmd.ErrOrStderr())

	c := checker.New(checker.Config{
		BlockComments: cfg.Check.BlockComments,
		MaxFileSize:   cfg.Check.MaxFileSize,
		Logger:        logger,
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := c.CheckFile(ctx, path)
	if err != nil {
		return &exitError{code: exitFailure, err: fmt.Errorf("checking %s: %w", path, err)}
	}
	logger.Info("check complete", "path", path, "lines", result.Lines, "valid", result.Valid())

	if err := writeResult(cmd, cfg.Check, result); err != nil {
		return &exitError{code: exitFailure, err: fmt.Errorf("writing output: %w", err)}
	}

	if !result.Valid() {
		return &exitError{code: exitProblem}
	}
	return nil
}
