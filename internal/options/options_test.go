package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-mstl/core"
)

func TestFromMapAllKeys(t *testing.T) {
	p, err := FromMap(map[string]any{
		"robust":         true,
		"trendJump":      2,
		"trendDegree":    0,
		"trendLength":    15,
		"innerLoops":     3,
		"outerLoops":     4,
		"lowPassJump":    1,
		"lowPassDegree":  2,
		"lowPassLength":  9,
		"seasonalJump":   1,
		"seasonalDegree": 1,
		"seasonalLength": 11,
		"lambda":         0.5,
		"iterations":     3,
	})
	require.NoError(t, err)

	lambda, ok := p.Lambda()
	assert.True(t, ok)
	assert.Equal(t, 0.5, lambda)
	assert.Equal(t, 3, p.Iterations())

	s, err := p.STL().Resolve(7)
	require.NoError(t, err)
	assert.True(t, s.Robust())
	assert.Equal(t, 3, s.InnerLoops())
	assert.Equal(t, 4, s.OuterLoops())
	assert.Equal(t, 15, s.Trend().Length)
	assert.Equal(t, 0, s.Trend().Degree)
	assert.Equal(t, 2, s.Trend().Jump)
	assert.Equal(t, 9, s.LowPass().Length)
	assert.Equal(t, 2, s.LowPass().Degree)
	assert.Equal(t, 1, s.LowPass().Jump)
	assert.Equal(t, 11, s.Seasonal().Length)
	assert.Equal(t, 1, s.Seasonal().Degree)
	assert.Equal(t, 1, s.Seasonal().Jump)
}

func TestFromMapEmpty(t *testing.T) {
	p, err := FromMap(nil)
	require.NoError(t, err)

	_, ok := p.Lambda()
	assert.False(t, ok)
	assert.Equal(t, 2, p.Iterations())
	assert.False(t, p.STL().Robust())
}

func TestFromMapTypeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
		msg  string
	}{
		{name: "robust", in: map[string]any{"robust": "yes"}, msg: "options.robust must be a boolean"},
		{name: "robust number", in: map[string]any{"robust": 1}, msg: "options.robust must be a boolean"},
		{name: "trendJump", in: map[string]any{"trendJump": "3"}, msg: "options.trendJump must be a number"},
		{name: "lambda", in: map[string]any{"lambda": true}, msg: "options.lambda must be a number"},
		{name: "iterations", in: map[string]any{"iterations": []int{2}}, msg: "options.iterations must be a number"},
		{name: "fractional", in: map[string]any{"seasonalLength": 7.5}, msg: "options.seasonalLength must be an integer"},
		{name: "unknown", in: map[string]any{"trendWindow": 5}, msg: "options.trendWindow is not a recognized option"},
		{
			name: "sorted order",
			in:   map[string]any{"trendLength": "x", "innerLoops": "y"},
			msg:  "options.innerLoops",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromMap(tc.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrInvalidArgument)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestFromMapAcceptsNumericKinds(t *testing.T) {
	p, err := FromMap(map[string]any{
		"trendLength": int64(21),
		"innerLoops":  float64(4),
		"lambda":      1,
	})
	require.NoError(t, err)

	lambda, ok := p.Lambda()
	require.True(t, ok)
	assert.Equal(t, 1.0, lambda)

	s, err := p.STL().Resolve(12)
	require.NoError(t, err)
	assert.Equal(t, 21, s.Trend().Length)
	assert.Equal(t, 4, s.InnerLoops())
}

func TestParseYAMLAndJSON(t *testing.T) {
	yamlDoc := []byte(`
periods: [7, 30]
options:
  robust: true
  seasonalDegree: 1
  lambda: 0.25
`)
	jsonDoc := []byte(`{"periods": [7, 30], "options": {"robust": true, "seasonalDegree": 1, "lambda": 0.25}}`)

	for name, data := range map[string][]byte{"yaml": yamlDoc, "json": jsonDoc} {
		t.Run(name, func(t *testing.T) {
			doc, err := Parse(data)
			require.NoError(t, err)
			assert.Equal(t, []int{7, 30}, doc.Periods)

			p, err := doc.Params()
			require.NoError(t, err)
			assert.True(t, p.STL().Robust())
			lambda, ok := p.Lambda()
			assert.True(t, ok)
			assert.Equal(t, 0.25, lambda)
		})
	}
}

func TestParseRejectsTypedValues(t *testing.T) {
	doc, err := Parse([]byte("options:\n  robust: \"true\"\n"))
	require.NoError(t, err)

	_, err = doc.Params()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "options.robust must be a boolean")
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("periods: [7, 30\n"))
	require.Error(t, err)

	doc, err := Parse([]byte("periods: [12]\n"))
	require.NoError(t, err)
	assert.NotNil(t, doc.Options)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mstl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("periods: [24]\noptions:\n  iterations: 3\n"), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []int{24}, doc.Periods)
	assert.Equal(t, 3, doc.Options["iterations"])

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read options file")
}

func TestMerge(t *testing.T) {
	base := map[string]any{"robust": false, "lambda": 0.5}
	got := Merge(base, map[string]any{"robust": true})

	assert.Equal(t, map[string]any{"robust": true, "lambda": 0.5}, got)
	assert.Equal(t, false, base["robust"])
}

func TestParsePeriods(t *testing.T) {
	got, err := ParsePeriods(" 7, 30 ,365")
	require.NoError(t, err)
	assert.Equal(t, []int{7, 30, 365}, got)

	got, err = ParsePeriods("  ")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ParsePeriods("7,week")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Len(t, keys, 14)
	assert.IsIncreasing(t, keys)
	assert.Contains(t, keys, "lowPassDegree")
}
