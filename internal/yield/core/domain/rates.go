package domain

import (
	"fmt"
	"math"
	"strings"
)

// RateMode selects how conversion rates are expressed.
type RateMode string

const (
	// RateModeStep divides each stage by the stage before it.
	RateModeStep RateMode = "step"
	// RateModeBase divides each stage by newInterviews.
	RateModeBase RateMode = "base"
)

// ParseRateMode accepts "", "step" or "base".
func ParseRateMode(raw string) (RateMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "step":
		return RateModeStep, nil
	case "base":
		return RateModeBase, nil
	default:
		return "", fmt.Errorf("unknown rate mode %q", raw)
	}
}

// Rate returns num/denom as a percentage rounded to one decimal place.
// A zero denominator yields 0 and the result is clamped to [0, 100].
func Rate(num, denom int64) float64 {
	if denom <= 0 || num <= 0 {
		return 0
	}
	if num >= denom {
		return 100
	}
	return math.Round(1000*float64(num)/float64(denom)) / 10
}

// StepRates divides each numerator by the count of its denominator stage.
func StepRates(counts MetricCounts, nums Numerators) RateSet {
	out := NewRateSet()
	for _, d := range RateDefs {
		out[d.Key] = Rate(nums[d.Key], counts.Get(d.Denominator))
	}
	return out
}

// BaseRates divides every numerator stage count by newInterviews.
func BaseRates(counts MetricCounts) RateSet {
	out := NewRateSet()
	base := counts.Get(MetricNewInterviews)
	for _, d := range RateDefs {
		out[d.Key] = Rate(counts.Get(d.Numerator), base)
	}
	return out
}

// ComputeRates produces a RateSet under mode. A nil nums means the counts
// are period counts and the numerator stage counts stand in for numerators.
func ComputeRates(counts MetricCounts, nums Numerators, mode RateMode) RateSet {
	if mode == RateModeBase {
		return BaseRates(counts)
	}
	if nums == nil {
		nums = NumeratorsFromCounts(counts)
	}
	return StepRates(counts, nums)
}
