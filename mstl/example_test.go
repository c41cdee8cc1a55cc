package mstl_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-mstl/mstl"
	"github.com/cwbudde/algo-mstl/stl"
)

func ExampleDecompose() {
	series := make([]float64, 210)
	for i := range series {
		t := float64(i)
		series[i] = 20 + 0.05*t + 2*math.Sin(2*math.Pi*t/7) + 3*math.Sin(2*math.Pi*t/30)
	}

	res, err := mstl.Decompose(series, []int{7, 30}, mstl.NewParams(
		mstl.WithSTL(stl.WithRobust(true)),
	))
	if err != nil {
		fmt.Println(err)
		return
	}
	for j, p := range res.Periods {
		fmt.Printf("period %d: strength above 0.9: %v\n", p, res.SeasonalStrength(j) > 0.9)
	}

	// Output:
	// period 7: strength above 0.9: true
	// period 30: strength above 0.9: true
}

func ExampleResult_Reconstruct() {
	series := []float64{
		5, 9, 2, 9, 0, 6, 3, 8, 5, 8, 7, 8, 8, 0, 2,
		5, 0, 5, 6, 7, 3, 6, 1, 4, 4, 4, 3, 7, 5, 8,
	}
	for i := range series {
		series[i]++
	}

	res, err := mstl.Decompose(series, []int{7}, mstl.NewParams(mstl.WithLambda(0.5)))
	if err != nil {
		fmt.Println(err)
		return
	}
	back := res.Reconstruct()
	fmt.Printf("%.3f %.3f %.3f\n", back[0], back[1], back[2])

	// Output:
	// 6.000 10.000 3.000
}
