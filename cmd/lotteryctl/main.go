package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ArowuTest/lottery-results-backend/internal/logging"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery/parser"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery/patterns"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery/prize"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery/ticket"
)

var version = "0.1.0"

func main() {
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options are the persistent flags shared by every subcommand.
type options struct {
	patternsFile string
	logLevel     string
}

func rootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "lotteryctl",
		Short: "Kerala lottery result tools",
		Long: `lotteryctl parses lottery result bulletins that were already converted
to plain text and checks tickets against them.

Example:
  lotteryctl parse result.txt
  lotteryctl check result.txt "RT 207473"
  lotteryctl validate rt207473`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.patternsFile, "patterns", os.Getenv("PARSER_PATTERNSFILE"), "YAML tier catalog replacing the built-in one")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")

	cmd.AddCommand(parseCmd(opts))
	cmd.AddCommand(checkCmd(opts))
	cmd.AddCommand(validateCmd())
	return cmd
}

func parseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a result bulletin and print it as JSON",
		Long:  "Parse a result bulletin and print it as JSON. Use - to read standard input.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _, err := parseFile(cmd, opts, args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
}

func checkCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file> <ticket>",
		Short: "Check a ticket against a result bulletin",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := ticket.Validate(args[1])
			if !v.Valid {
				return fmt.Errorf("ticket %q: %s", args[1], v.Error)
			}
			res, ps, err := parseFile(cmd, opts, args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), prize.NewMatcher(ps).Check(v.Normalized, res))
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <ticket>",
		Short: "Validate and normalize a ticket number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), ticket.Validate(args[0]))
		},
	}
}

// parseFile reads path (or stdin for "-") and parses it with the configured
// catalog.
func parseFile(cmd *cobra.Command, opts *options, path string) (*lottery.ParsedLotteryResult, *patterns.Set, error) {
	ps, err := patterns.LoadFile(opts.patternsFile)
	if err != nil {
		return nil, nil, err
	}

	var data []byte
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), opts.logLevel)
	return parser.New(ps, parser.WithLogger(logger)).Parse(string(data)), ps, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
