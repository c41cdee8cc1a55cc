package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-mstl/core"
	"github.com/cwbudde/algo-mstl/internal/options"
	"github.com/cwbudde/algo-mstl/internal/seriesio"
	"github.com/cwbudde/algo-mstl/mstl"
)

// optionFlag binds a command-line flag to a decomposition option key.
type optionFlag struct {
	name  string
	key   string
	usage string
}

var intOptionFlags = []optionFlag{
	{"seasonal-length", options.KeySeasonalLength, "Seasonal smoother window (odd, >= 3)"},
	{"seasonal-degree", options.KeySeasonalDegree, "Seasonal smoother degree (0, 1 or 2)"},
	{"seasonal-jump", options.KeySeasonalJump, "Seasonal smoother evaluation step"},
	{"trend-length", options.KeyTrendLength, "Trend smoother window (odd, >= 3)"},
	{"trend-degree", options.KeyTrendDegree, "Trend smoother degree (0, 1 or 2)"},
	{"trend-jump", options.KeyTrendJump, "Trend smoother evaluation step"},
	{"low-pass-length", options.KeyLowPassLength, "Low-pass smoother window (odd, >= 3)"},
	{"low-pass-degree", options.KeyLowPassDegree, "Low-pass smoother degree (0, 1 or 2)"},
	{"low-pass-jump", options.KeyLowPassJump, "Low-pass smoother evaluation step"},
	{"inner-loops", options.KeyInnerLoops, "Inner loop passes per robustness iteration"},
	{"outer-loops", options.KeyOuterLoops, "Robustness iterations (with --robust)"},
	{"iterations", options.KeyIterations, "Passes over all periods"},
}

type fitFlags struct {
	periods      string
	config       string
	column       string
	noHeader     bool
	delimiter    string
	precision    int
	format       string
	output       string
	withObserved bool
}

func newFitCmd(a *app) *cobra.Command {
	var f fitFlags

	cmd := &cobra.Command{
		Use:   "fit [file]",
		Short: "Decompose a series",
		Long: `Decompose a series into trend, seasonal and remainder components.

Options are taken from --config (YAML or JSON with "periods" and "options")
and overridden by the flags below. Without periods only the trend is fitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFit(cmd, args, f)
		},
	}

	cmd.Flags().StringVarP(&f.periods, "periods", "p", "", "Comma separated seasonal periods, e.g. 24,168")
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "YAML or JSON options file")
	cmd.Flags().StringVar(&f.column, "column", "", "Series column name or 0-based index (default: first numeric column)")
	cmd.Flags().BoolVar(&f.noHeader, "no-header", false, "Input has no header row")
	cmd.Flags().StringVar(&f.delimiter, "delimiter", ",", "Input field delimiter")
	cmd.Flags().IntVar(&f.precision, "precision", 64, "Floating point precision: 32 or 64")
	cmd.Flags().StringVarP(&f.format, "format", "f", "csv", "Output format: csv or json")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&f.withObserved, "with-observed", false, "Include the input series in the output")

	cmd.Flags().Bool("robust", false, "Enable the robustness loop")
	cmd.Flags().Float64("lambda", 0, "Box-Cox lambda (unset: no transform)")
	for _, of := range intOptionFlags {
		cmd.Flags().Int(of.name, 0, of.usage)
	}

	return cmd
}

// flagOverrides collects the option flags set on the command line.
func flagOverrides(cmd *cobra.Command) (map[string]any, error) {
	out := map[string]any{}
	flags := cmd.Flags()

	if flags.Changed("robust") {
		v, err := flags.GetBool("robust")
		if err != nil {
			return nil, err
		}
		out[options.KeyRobust] = v
	}
	if flags.Changed("lambda") {
		v, err := flags.GetFloat64("lambda")
		if err != nil {
			return nil, err
		}
		out[options.KeyLambda] = v
	}
	for _, of := range intOptionFlags {
		if !flags.Changed(of.name) {
			continue
		}
		v, err := flags.GetInt(of.name)
		if err != nil {
			return nil, err
		}
		out[of.key] = v
	}
	return out, nil
}

func (a *app) runFit(cmd *cobra.Command, args []string, f fitFlags) error {
	if f.precision != 32 && f.precision != 64 {
		return fmt.Errorf("precision must be 32 or 64: %d", f.precision)
	}
	if f.format != "csv" && f.format != "json" {
		return fmt.Errorf("format must be csv or json: %q", f.format)
	}
	readOpts, err := readOptions(f.column, f.noHeader, f.delimiter)
	if err != nil {
		return err
	}

	doc := &options.Document{Options: map[string]any{}}
	if f.config != "" {
		doc, err = options.Load(f.config)
		if err != nil {
			return err
		}
		a.logger.Debug("loaded options", zap.String("path", f.config), zap.Any("options", doc.Options))
	}

	periods := doc.Periods
	if cmd.Flags().Changed("periods") {
		periods, err = options.ParsePeriods(f.periods)
		if err != nil {
			return err
		}
	}

	overrides, err := flagOverrides(cmd)
	if err != nil {
		return err
	}
	params, err := options.FromMap(options.Merge(doc.Options, overrides))
	if err != nil {
		return err
	}

	series, source, err := a.readSeries(args, readOpts)
	if err != nil {
		return err
	}
	a.logger.Debug("read series", zap.String("source", source), zap.Int("n", len(series)))

	if f.precision == 32 {
		return fit(a, toPrecision[float32](series), periods, params, f)
	}
	return fit(a, series, periods, params, f)
}

// fit decomposes series and writes the result. The output file is only
// created once the decomposition succeeded.
func fit[F core.Float](a *app, series []F, periods []int, params mstl.Params, f fitFlags) (retErr error) {
	start := time.Now()
	res, err := mstl.Decompose(series, periods, params)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	strengths := make([]float64, len(res.Seasonal))
	for j := range strengths {
		strengths[j] = res.SeasonalStrength(j)
	}
	a.logger.Info("decomposition finished",
		zap.Int("n", len(series)),
		zap.Ints("periods", res.Periods),
		zap.Float64s("seasonal_strength", strengths),
		zap.Float64("trend_strength", res.TrendStrength()),
		zap.Bool("transformed", res.Transformed),
		zap.Duration("elapsed", elapsed))
	for _, c := range seriesio.Summaries(res) {
		a.logger.Debug("component",
			zap.String("name", c.Name),
			zap.Float64("mean", c.Mean),
			zap.Float64("std", c.StdDev),
			zap.Float64("min", c.Min),
			zap.Float64("max", c.Max))
	}

	var w io.Writer = a.out
	if f.output != "" {
		file, err := os.Create(f.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if err := file.Close(); err != nil && retErr == nil {
				retErr = fmt.Errorf("failed to close output file: %w", err)
			}
		}()
		w = file
	}

	var observed []F
	if f.withObserved {
		observed = series
	}
	if f.format == "json" {
		err = seriesio.WriteJSON(w, observed, res)
	} else {
		err = seriesio.WriteCSV(w, observed, res)
	}
	if err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

func readOptions(column string, noHeader bool, delimiter string) (seriesio.ReadOptions, error) {
	r := []rune(delimiter)
	if len(r) != 1 {
		return seriesio.ReadOptions{}, fmt.Errorf("delimiter must be a single character: %q", delimiter)
	}
	return seriesio.ReadOptions{Column: column, HasHeader: !noHeader, Delimiter: r[0]}, nil
}

func toPrecision[F core.Float](x []float64) []F {
	out := make([]F, len(x))
	for i, v := range x {
		out[i] = F(v)
	}
	return out
}
