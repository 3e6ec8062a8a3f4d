/*
Package cli provides command-line helpers for the idfcheck command.

Output Formatting:

Every command result can be written as text, JSON or YAML:

	formatter := cli.NewFormatter(cli.FormatYAML)
	if err := formatter.FormatTo(os.Stdout, cli.NewCheckReport(result)); err != nil {
		return err
	}

Results that implement Texter control their own text rendering; the report
types in this package do.

Exit Codes:

Commands return a CommandError; ExitCode maps it to 0 (valid), 1 (problems
found) or 2 (usage or configuration error).

Signal Handling:

For graceful shutdown of watch mode on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
