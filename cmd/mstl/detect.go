package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-mstl/period"
)

type detectFlags struct {
	column      string
	noHeader    bool
	delimiter   string
	maxPeriods  int
	minPeriod   int
	maxPeriod   int
	minRelative float64
	taper       string
	noDetrend   bool
	periodsOnly bool
}

func newDetectCmd(a *app) *cobra.Command {
	var f detectFlags

	cmd := &cobra.Command{
		Use:   "detect [file]",
		Short: "Suggest seasonal periods from the periodogram",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDetect(args, f)
		},
	}

	cmd.Flags().StringVar(&f.column, "column", "", "Series column name or 0-based index (default: first numeric column)")
	cmd.Flags().BoolVar(&f.noHeader, "no-header", false, "Input has no header row")
	cmd.Flags().StringVar(&f.delimiter, "delimiter", ",", "Input field delimiter")
	cmd.Flags().IntVarP(&f.maxPeriods, "max-periods", "k", period.DefaultMaxPeriods, "Maximum number of candidates")
	cmd.Flags().IntVar(&f.minPeriod, "min-period", 2, "Shortest period considered")
	cmd.Flags().IntVar(&f.maxPeriod, "max-period", 0, "Longest period considered (0: half the series)")
	cmd.Flags().Float64Var(&f.minRelative, "min-relative-power", period.DefaultMinRelativePower, "Drop peaks weaker than this fraction of the strongest")
	cmd.Flags().StringVar(&f.taper, "taper", period.TaperHann.String(), "Data window: hann, hamming or rectangular")
	cmd.Flags().BoolVar(&f.noDetrend, "no-detrend", false, "Remove only the mean instead of the least-squares line")
	cmd.Flags().BoolVar(&f.periodsOnly, "periods-only", false, "Print a comma separated period list for --periods")

	return cmd
}

func (a *app) runDetect(args []string, f detectFlags) error {
	readOpts, err := readOptions(f.column, f.noHeader, f.delimiter)
	if err != nil {
		return err
	}
	taper, err := period.ParseTaper(f.taper)
	if err != nil {
		return err
	}

	series, source, err := a.readSeries(args, readOpts)
	if err != nil {
		return err
	}

	cands, err := period.Detect(series,
		period.WithTaper(taper),
		period.WithDetrend(!f.noDetrend),
		period.WithMaxPeriods(f.maxPeriods),
		period.WithMinPeriod(f.minPeriod),
		period.WithMaxPeriod(f.maxPeriod),
		period.WithMinRelativePower(f.minRelative),
	)
	if err != nil {
		return err
	}
	a.logger.Info("period detection finished",
		zap.String("source", source),
		zap.Int("n", len(series)),
		zap.Ints("periods", period.Periods(cands)))

	if f.periodsOnly {
		parts := make([]string, len(cands))
		for i, c := range cands {
			parts[i] = strconv.Itoa(c.Period)
		}
		_, err := fmt.Fprintln(a.out, strings.Join(parts, ","))
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PERIOD\tBIN\tPOWER\tRELATIVE")
	for _, c := range cands {
		fmt.Fprintf(tw, "%d\t%d\t%.4g\t%.3f\n", c.Period, c.Bin, c.Power, c.Relative)
	}
	return tw.Flush()
}
