// Package options turns loosely typed decomposition options, as read from a
// YAML or JSON document or collected from command-line flags, into
// [mstl.Params].
package options

import (
	"fmt"
	"maps"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-mstl/core"
	"github.com/cwbudde/algo-mstl/mstl"
	"github.com/cwbudde/algo-mstl/stl"
)

// ErrInvalidArgument is returned for malformed documents and option values.
var ErrInvalidArgument = core.ErrInvalidArgument

// Option keys.
const (
	KeyRobust         = "robust"
	KeyTrendJump      = "trendJump"
	KeyTrendDegree    = "trendDegree"
	KeyTrendLength    = "trendLength"
	KeyInnerLoops     = "innerLoops"
	KeyOuterLoops     = "outerLoops"
	KeyLowPassJump    = "lowPassJump"
	KeyLowPassDegree  = "lowPassDegree"
	KeyLowPassLength  = "lowPassLength"
	KeySeasonalJump   = "seasonalJump"
	KeySeasonalDegree = "seasonalDegree"
	KeySeasonalLength = "seasonalLength"
	KeyLambda         = "lambda"
	KeyIterations     = "iterations"
)

// intOptions maps integer option keys to their STL setter.
var intOptions = map[string]func(int) stl.Option{
	KeyTrendJump:      stl.WithTrendJump,
	KeyTrendDegree:    stl.WithTrendDegree,
	KeyTrendLength:    stl.WithTrendLength,
	KeyInnerLoops:     stl.WithInnerLoops,
	KeyOuterLoops:     stl.WithOuterLoops,
	KeyLowPassJump:    stl.WithLowPassJump,
	KeyLowPassDegree:  stl.WithLowPassDegree,
	KeyLowPassLength:  stl.WithLowPassLength,
	KeySeasonalJump:   stl.WithSeasonalJump,
	KeySeasonalDegree: stl.WithSeasonalDegree,
	KeySeasonalLength: stl.WithSeasonalLength,
}

// Keys returns every recognized option key in sorted order.
func Keys() []string {
	keys := slices.Collect(maps.Keys(intOptions))
	keys = append(keys, KeyRobust, KeyLambda, KeyIterations)
	slices.Sort(keys)
	return keys
}

// Document is a decomposition request as stored on disk:
//
//	periods: [7, 30]
//	options:
//	  robust: true
//	  seasonalDegree: 1
//	  lambda: 0.5
type Document struct {
	Periods []int          `yaml:"periods"`
	Options map[string]any `yaml:"options"`
}

// Load reads a YAML or JSON document from path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a YAML or JSON document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse options: %w", err)
	}
	if doc.Options == nil {
		doc.Options = map[string]any{}
	}
	return &doc, nil
}

// Params converts the document options with [FromMap].
func (d *Document) Params() (mstl.Params, error) {
	return FromMap(d.Options)
}

// FromMap converts an option map into parameters. Keys are checked in sorted
// order and the first unknown key or wrongly typed value is reported.
// Range checks happen later, when the parameters are resolved.
func FromMap(m map[string]any) (mstl.Params, error) {
	var opts []mstl.Option
	var stlOpts []stl.Option

	for _, key := range slices.Sorted(maps.Keys(m)) {
		value := m[key]
		switch key {
		case KeyRobust:
			b, ok := value.(bool)
			if !ok {
				return mstl.Params{}, typeError(key, "a boolean")
			}
			stlOpts = append(stlOpts, stl.WithRobust(b))
		case KeyLambda:
			f, ok := toFloat(value)
			if !ok {
				return mstl.Params{}, typeError(key, "a number")
			}
			opts = append(opts, mstl.WithLambda(f))
		case KeyIterations:
			n, err := toInt(key, value)
			if err != nil {
				return mstl.Params{}, err
			}
			opts = append(opts, mstl.WithIterations(n))
		default:
			set, ok := intOptions[key]
			if !ok {
				return mstl.Params{}, fmt.Errorf("options.%s is not a recognized option: %w", key, ErrInvalidArgument)
			}
			n, err := toInt(key, value)
			if err != nil {
				return mstl.Params{}, err
			}
			stlOpts = append(stlOpts, set(n))
		}
	}

	opts = append(opts, mstl.WithSTL(stlOpts...))
	return mstl.NewParams(opts...), nil
}

// Merge returns a new map holding base overlaid with override.
func Merge(base, override map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(override))
	maps.Copy(out, base)
	maps.Copy(out, override)
	return out
}

// ParsePeriods parses a comma separated list such as "7,30". Blank input
// yields no periods.
func ParsePeriods(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	periods := make([]int, 0, len(fields))
	for _, f := range fields {
		p, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("period %q is not an integer: %w", f, ErrInvalidArgument)
		}
		periods = append(periods, p)
	}
	return periods, nil
}

func typeError(key, kind string) error {
	return fmt.Errorf("options.%s must be %s: %w", key, kind, ErrInvalidArgument)
}

func toInt(key string, v any) (int, error) {
	f, ok := toFloat(v)
	if !ok {
		return 0, typeError(key, "a number")
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, typeError(key, "an integer")
	}
	return int(f), nil
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}
