// Package floatutils provides utilities for working with floats
package floatutils

import "math"

// Min calculates and returns the minimum float64 in a list
func Min(floats ...float64) float64 {
	min := floats[0]
	for _, val := range floats {
		if val < min {
			min = val
		}
	}
	return min
}

// Max calculates and returns the maximum float64 in a list
func Max(floats ...float64) float64 {
	max := floats[0]
	for _, val := range floats {
		if val > max {
			max = val
		}
	}
	return max
}

// LogSumExp computes log(sum(exp(values))) while avoiding overflow of
// the intermediate exponentials
func LogSumExp(values ...float64) float64 {
	max := Max(values...)
	if math.IsInf(max, -1) {
		return max
	}

	var sum float64
	for _, v := range values {
		sum += math.Exp(v - max)
	}
	return max + math.Log(sum)
}

// MaxAbsDiff returns the largest elementwise absolute difference
// between two equal-length slices
func MaxAbsDiff(a, b []float64) float64 {
	diff := 0.0
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > diff {
			diff = d
		}
	}
	return diff
}
