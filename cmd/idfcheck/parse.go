package main

import (
	"github.com/spf13/cobra"

	"mercator-hq/idfcheck/pkg/cli"
	"mercator-hq/idfcheck/pkg/idf/parser"
)

var parseFlags struct {
	output string
	full   bool
	strict bool
}

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse IDF documents",
	Long: `Parse IDF 3.0 documents and report their contents or their errors.

Errors name the file, line and column, show the offending source line and,
where a keyword was mistyped, suggest the closest valid one.

Examples:
  # Summarize a board
  idfcheck parse board main.emn

  # Dump a library as YAML
  idfcheck parse library parts.emp --output yaml --full

  # Reject repeated PROP names
  idfcheck parse library parts.emp --strict`,
}

var parseBoardCmd = &cobra.Command{
	Use:   "board FILE...",
	Short: "Parse board or panel files (.emn)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newParser()
		return parseFiles(cmd, args, func(path string) *cli.ParseReport {
			board, err := p.ParseBoardFile(path)
			return cli.NewBoardReport(path, board, err, parseFlags.full)
		})
	},
}

var parseLibraryCmd = &cobra.Command{
	Use:   "library FILE...",
	Short: "Parse library files (.emp)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newParser()
		return parseFiles(cmd, args, func(path string) *cli.ParseReport {
			lib, err := p.ParseLibraryFile(path)
			return cli.NewLibraryReport(path, lib, err, parseFlags.full)
		})
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.AddCommand(parseBoardCmd, parseLibraryCmd)

	parseCmd.PersistentFlags().StringVarP(&parseFlags.output, "output", "o", "text", "output format: text, json, yaml")
	parseCmd.PersistentFlags().BoolVar(&parseFlags.full, "full", false, "include the parsed document in json/yaml output")
	parseCmd.PersistentFlags().BoolVar(&parseFlags.strict, "strict", false, "treat repeated PROP names as errors")
}

func newParser() *parser.Parser {
	return parser.NewParser().
		WithMaxFileSize(app.cfg.Parser.MaxFileSize).
		WithStrictProperties(app.cfg.Parser.StrictProperties || parseFlags.strict)
}

// parseFiles parses every path and writes one report per file. It fails
// with errProblemsFound if any file is invalid.
func parseFiles(cmd *cobra.Command, paths []string, parse func(string) *cli.ParseReport) error {
	if _, err := cli.ParseFormat(parseFlags.output); err != nil {
		return err
	}

	reports := make([]*cli.ParseReport, 0, len(paths))
	valid := true
	for _, path := range paths {
		r := parse(path)
		reports = append(reports, r)
		valid = valid && r.Valid

		outcome := "success"
		if !r.Valid {
			outcome = "failure"
		}
		app.logger.Debug("document parsed", "path", path, "kind", r.Kind, "outcome", outcome)
	}

	var err error
	if parseFlags.output == string(cli.FormatText) {
		for _, r := range reports {
			if err = output(cmd, parseFlags.output, r); err != nil {
				break
			}
		}
	} else if len(reports) == 1 {
		err = output(cmd, parseFlags.output, reports[0])
	} else {
		err = output(cmd, parseFlags.output, reports)
	}
	if err != nil {
		return err
	}

	if !valid {
		return cli.NewCommandError(cmd.CommandPath(), errProblemsFound)
	}
	return nil
}
