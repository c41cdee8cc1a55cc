package seriesio

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-mstl/mstl"
)

func TestReadColumnByName(t *testing.T) {
	in := "date,sales,visits\n2024-01-01,10.5,3\n2024-01-02, 11,4\n# holiday\n2024-01-03,9.25,5\n"

	opts := DefaultReadOptions()
	opts.Column = "visits"
	got, err := ReadColumn(strings.NewReader(in), opts)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4, 5}, got)
}

func TestReadColumnFirstNumeric(t *testing.T) {
	in := "date,sales\n2024-01-01,10.5\n2024-01-02,11\n"

	got, err := ReadColumn(strings.NewReader(in), DefaultReadOptions())
	require.NoError(t, err)
	assert.Equal(t, []float64{10.5, 11}, got)
}

func TestReadColumnByIndexWithoutHeader(t *testing.T) {
	in := "a;1;2\nb;3;4\n"

	got, err := ReadColumn(strings.NewReader(in), ReadOptions{Column: "2", Delimiter: ';'})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4}, got)
}

func TestReadColumnSingleColumn(t *testing.T) {
	got, err := ReadColumn(strings.NewReader("1\n2.5\n-3e2\n"), ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, -300}, got)
}

func TestReadColumnErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts ReadOptions
		msg  string
	}{
		{name: "empty", in: "", opts: DefaultReadOptions(), msg: "no observations"},
		{name: "header only", in: "y\n", opts: DefaultReadOptions(), msg: "no observations"},
		{name: "missing value", in: "y\n1\n\"\"\n", opts: DefaultReadOptions(), msg: "line 3: missing value"},
		{name: "not a number", in: "y\n1\nabc\n", opts: DefaultReadOptions(), msg: "line 3: value \"abc\" is not a number"},
		{name: "nan", in: "y\nNaN\n", opts: DefaultReadOptions(), msg: "line 2: value \"NaN\" is not finite"},
		{name: "inf after label", in: "t,y\nmon,+Inf\n", opts: DefaultReadOptions(), msg: "line 2: value \"+Inf\" is not finite"},
		{name: "nan by name", in: "y\n1\nnan\n", opts: ReadOptions{HasHeader: true, Column: "y"}, msg: "line 3: value \"nan\" is not finite"},
		{name: "unknown column", in: "y\n1\n", opts: ReadOptions{HasHeader: true, Column: "z"}, msg: "column \"z\" not found"},
		{name: "short row", in: "a,b\n1,2\n3\n", opts: ReadOptions{HasHeader: true, Column: "b"}, msg: "missing column 1"},
		{name: "no numeric column", in: "x\nfoo\n", opts: DefaultReadOptions(), msg: "no numeric column"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadColumn(strings.NewReader(tc.in), tc.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.csv")
	require.NoError(t, os.WriteFile(path, []byte("y\n1\n2\n3\n"), 0o600))

	got, err := ReadFile(path, DefaultReadOptions())
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, got)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"), DefaultReadOptions())
	require.Error(t, err)
}

func sampleResult() *mstl.Result[float64] {
	return &mstl.Result[float64]{
		Trend:     []float64{1, 2},
		Seasonal:  [][]float64{{0.5, -0.5}, {0.25, 0}},
		Remainder: []float64{0, 0.125},
		Periods:   []int{7, 7},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []float64{1.75, 1.625}, sampleResult()))

	want := "index,observed,trend,seasonal_7,seasonal_7_2,remainder\n" +
		"0,1.75,1,0.5,0.25,0\n" +
		"1,1.625,2,-0.5,0,0.125\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVFloat32(t *testing.T) {
	res := &mstl.Result[float32]{
		Trend:     []float32{0.1},
		Seasonal:  [][]float32{{0.2}},
		Remainder: []float32{0.3},
		Periods:   []int{12},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil, res))
	assert.Equal(t, "index,trend,seasonal_12,remainder\n0,0.1,0.2,0.3\n", buf.String())
}

func TestWriteCSVLengthMismatch(t *testing.T) {
	err := WriteCSV(&bytes.Buffer{}, []float64{1}, sampleResult())
	require.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	res := sampleResult()
	res.Transformed = true
	res.Lambda = 0.5

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil, res))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []any{7.0, 7.0}, got["periods"])
	assert.Equal(t, 0.5, got["lambda"])
	assert.NotContains(t, got, "observed")
	assert.Len(t, got["seasonal"], 2)
	assert.Len(t, got["seasonalStrength"], 2)
	assert.Contains(t, got, "trendStrength")

	components, ok := got["components"].([]any)
	require.True(t, ok)
	require.Len(t, components, 4)
	trend := components[0].(map[string]any)
	assert.Equal(t, "trend", trend["name"])
	assert.Equal(t, 1.5, trend["mean"])
	assert.Equal(t, "seasonal_7_2", components[2].(map[string]any)["name"])
}

func TestSummaries(t *testing.T) {
	got := Summaries(sampleResult())

	names := make([]string, len(got))
	for i, c := range got {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"trend", "seasonal_7", "seasonal_7_2", "remainder"}, names)

	assert.Equal(t, 2, got[0].Length)
	assert.Equal(t, 1.5, got[0].Mean)
	assert.Equal(t, 0.25, got[0].Variance)
	assert.Equal(t, 2.0, got[0].Max)
	assert.Equal(t, 1, got[0].MaxPos)
	assert.Equal(t, -0.5, got[1].Min)
	assert.Equal(t, 1, got[1].MinPos)
	assert.InDelta(t, 0.0625, got[3].Mean, 1e-15)
}

func TestNewReportWithoutLambda(t *testing.T) {
	rep := NewReport(nil, &mstl.Result[float64]{Trend: []float64{1}, Remainder: []float64{0}})
	assert.Nil(t, rep.Lambda)
	assert.Equal(t, []int{}, rep.Periods)
	assert.Empty(t, rep.SeasonalStrength)
}

func TestSeasonalNames(t *testing.T) {
	assert.Equal(t,
		[]string{"seasonal_7", "seasonal_30", "seasonal_7_2"},
		SeasonalNames([]int{7, 30, 7}))
}
