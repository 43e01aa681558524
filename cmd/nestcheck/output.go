package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/praetorian-inc/nestcheck/pkg/config"
	"github.com/praetorian-inc/nestcheck/pkg/sarif"
	"github.com/praetorian-inc/nestcheck/pkg/types"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// styles holds color formatters for human output
type styles struct {
	problem *color.Color
	valid   *color.Color
}

// newStyles creates color formatters
// enabled=false respects --color=never and the NO_COLOR env var
func newStyles(enabled bool) *styles {
	s := &styles{
		problem: color.New(color.Bold, color.FgHiRed),
		valid:   color.New(color.FgHiGreen),
	}

	if enabled {
		s.problem.EnableColor()
		s.valid.EnableColor()
	} else {
		s.problem.DisableColor()
		s.valid.DisableColor()
	}

	return s
}

// colorEnabled decides whether to color output written to out.
func colorEnabled(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		f, ok := out.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
}

func writeResult(cmd *cobra.Command, cfg config.CheckConfig, result *types.Result) error {
	out := cmd.OutOrStdout()

	switch cfg.Format {
	case "human":
		return outputHuman(out, newStyles(colorEnabled(cfg.Color, out)), result)
	case "json":
		return outputJSON(out, result)
	case "yaml":
		return outputYAML(out, result)
	case "sarif":
		return outputSARIF(out, result)
	default:
		return fmt.Errorf("unknown output format: %s", cfg.Format)
	}
}

func outputHuman(out io.Writer, s *styles, result *types.Result) error {
	style := s.valid
	if !result.Valid() {
		style = s.problem
	}
	_, err := fmt.Fprintln(out, style.Sprint(result.Message()))
	return err
}

func outputJSON(out io.Writer, result *types.Result) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(jsonResult{Result: result, Valid: result.Valid(), Message: result.Message()})
}

func outputYAML(out io.Writer, result *types.Result) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(yamlResult{Result: *result, Valid: result.Valid(), Message: result.Message()}); err != nil {
		return err
	}
	return encoder.Close()
}

// outputSARIF outputs the result in SARIF 2.1.0 format
func outputSARIF(out io.Writer, result *types.Result) error {
	report := sarif.NewReport()
	for _, rule := range types.Rules() {
		report.AddRule(rule)
	}
	report.AddResult(result)

	jsonBytes, err := report.ToJSON()
	if err != nil {
		return fmt.Errorf("serializing SARIF: %w", err)
	}
	jsonBytes = append(jsonBytes, '\n')

	if _, err := out.Write(jsonBytes); err != nil {
		return fmt.Errorf("writing SARIF output: %w", err)
	}
	return nil
}

// jsonResult adds the derived fields to the encoded result.
type jsonResult struct {
	*types.Result
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

type yamlResult struct {
	types.Result `yaml:",inline"`
	Valid         bool   `yaml:"valid"`
	Message       string `yaml:"message"`
}
