// Command mstl decomposes a time series into trend, seasonal and remainder
// components and suggests seasonal periods.
//
// Usage:
//
//	mstl fit [flags] [file]
//	mstl detect [flags] [file]
//	mstl version
//
// The series is read from a CSV file, or from standard input when no file or
// "-" is given.
//
// Examples:
//
//	mstl fit --periods 24,168 load.csv
//	mstl fit --config mstl.yaml --format json --output result.json load.csv
//	mstl detect --periods-only load.csv | xargs -I{} mstl fit --periods {} load.csv
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cwbudde/algo-mstl/internal/seriesio"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries the streams and the logger shared by all commands.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	verbose bool
	logger  *zap.Logger
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut, logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "mstl",
		Short: "Seasonal-trend decomposition with multiple seasonal periods",
		Long: `mstl splits a regularly spaced series into a trend, one seasonal
component per period and a remainder using MSTL (STL by LOESS generalized to
several periods), and detects candidate periods from the periodogram.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = newLogger(a.errOut, a.verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log progress details to stderr")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "mstl v%s (%s)\n", version, commit)
		},
	})
	rootCmd.AddCommand(newFitCmd(a))
	rootCmd.AddCommand(newDetectCmd(a))

	return rootCmd
}

// newLogger writes console-encoded entries to w. Warnings and errors are
// always shown; info and debug entries only with verbose.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core)
}

// readSeries reads the series from args[0], or from a.in without a file
// argument or with "-".
func (a *app) readSeries(args []string, opts seriesio.ReadOptions) ([]float64, string, error) {
	if len(args) == 0 || args[0] == "-" {
		values, err := seriesio.ReadColumn(a.in, opts)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read series from stdin: %w", err)
		}
		return values, "stdin", nil
	}

	values, err := seriesio.ReadFile(args[0], opts)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read series: %w", err)
	}
	return values, args[0], nil
}
