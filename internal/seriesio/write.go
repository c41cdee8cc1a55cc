package seriesio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/cwbudde/algo-mstl/core"
	"github.com/cwbudde/algo-mstl/mstl"
	"github.com/cwbudde/algo-mstl/stats"
)

// SeasonalNames returns one column name per period: seasonal_<p>, with a
// suffix for repeated periods.
func SeasonalNames(periods []int) []string {
	seen := make(map[int]int, len(periods))
	names := make([]string, len(periods))
	for i, p := range periods {
		seen[p]++
		names[i] = "seasonal_" + strconv.Itoa(p)
		if seen[p] > 1 {
			names[i] += "_" + strconv.Itoa(seen[p])
		}
	}
	return names
}

// WriteCSV writes one row per observation. observed may be nil; otherwise it
// must have the length of the result and is written as the first value column.
func WriteCSV[F core.Float](w io.Writer, observed []F, res *mstl.Result[F]) error {
	if observed != nil && len(observed) != len(res.Trend) {
		return fmt.Errorf("seriesio: observed length %d does not match result length %d", len(observed), len(res.Trend))
	}

	cw := csv.NewWriter(w)
	header := []string{"index"}
	if observed != nil {
		header = append(header, "observed")
	}
	header = append(header, "trend")
	header = append(header, SeasonalNames(res.Periods)...)
	header = append(header, "remainder")
	if err := cw.Write(header); err != nil {
		return err
	}

	bits := bitSize[F]()
	row := make([]string, 0, len(header))
	for i := range res.Trend {
		row = append(row[:0], strconv.Itoa(i))
		if observed != nil {
			row = append(row, formatFloat(observed[i], bits))
		}
		row = append(row, formatFloat(res.Trend[i], bits))
		for _, s := range res.Seasonal {
			row = append(row, formatFloat(s[i], bits))
		}
		row = append(row, formatFloat(res.Remainder[i], bits))
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ComponentSummary holds the descriptive statistics of one output column.
type ComponentSummary struct {
	Name string `json:"name"`
	stats.Summary
}

// Summaries returns one summary per component in column order: trend, the
// seasonal components, remainder.
func Summaries[F core.Float](res *mstl.Result[F]) []ComponentSummary {
	names := SeasonalNames(res.Periods)
	out := make([]ComponentSummary, 0, len(res.Seasonal)+2)
	out = append(out, ComponentSummary{Name: "trend", Summary: stats.Summarize(res.Trend)})
	for j, s := range res.Seasonal {
		out = append(out, ComponentSummary{Name: names[j], Summary: stats.Summarize(s)})
	}
	out = append(out, ComponentSummary{Name: "remainder", Summary: stats.Summarize(res.Remainder)})
	return out
}

// Report is the JSON form of a decomposition.
type Report[F core.Float] struct {
	Periods          []int     `json:"periods"`
	Lambda           *float64  `json:"lambda,omitempty"`
	Observed         []F       `json:"observed,omitempty"`
	Trend            []F       `json:"trend"`
	Seasonal         [][]F     `json:"seasonal"`
	Remainder        []F       `json:"remainder"`
	SeasonalStrength []float64 `json:"seasonalStrength"`
	TrendStrength    float64   `json:"trendStrength"`

	Components []ComponentSummary `json:"components"`
}

// NewReport collects res and its diagnostics.
func NewReport[F core.Float](observed []F, res *mstl.Result[F]) Report[F] {
	rep := Report[F]{
		Periods:          res.Periods,
		Observed:         observed,
		Trend:            res.Trend,
		Seasonal:         res.Seasonal,
		Remainder:        res.Remainder,
		SeasonalStrength: make([]float64, len(res.Seasonal)),
		TrendStrength:    res.TrendStrength(),
		Components:       Summaries(res),
	}
	if rep.Periods == nil {
		rep.Periods = []int{}
	}
	if res.Transformed {
		lambda := res.Lambda
		rep.Lambda = &lambda
	}
	for j := range res.Seasonal {
		rep.SeasonalStrength[j] = res.SeasonalStrength(j)
	}
	return rep
}

// WriteJSON writes the [Report] of res as indented JSON.
func WriteJSON[F core.Float](w io.Writer, observed []F, res *mstl.Result[F]) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewReport(observed, res))
}

func bitSize[F core.Float]() int {
	var zero F
	if _, ok := any(zero).(float32); ok {
		return 32
	}
	return 64
}

func formatFloat[F core.Float](v F, bits int) string {
	return strconv.FormatFloat(float64(v), 'g', -1, bits)
}
