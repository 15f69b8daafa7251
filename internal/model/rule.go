package model

import (
	"math"
	"regexp"
	"strconv"
)

var thresholdNumberRe = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)

// ThresholdLimit extracts the numeric limit from a threshold label such as
// "< 2.0%" or "< 0.75 Score". ok is false when no positive number is present.
func (r DataQualityRule) ThresholdLimit() (limit float64, ok bool) {
	m := thresholdNumberRe.FindString(r.Threshold)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// Progress returns the gauge fill for the rule as a percentage in [0, 100].
//
// The fill is the current value relative to the threshold limit. Rules whose
// threshold carries no usable number fall back to a fixed scale: x10 for
// percentages, x100 for everything else.
func (r DataQualityRule) Progress() float64 {
	var pct float64
	if limit, ok := r.ThresholdLimit(); ok {
		pct = r.CurrentValue / limit * 100
	} else if r.Unit == "%" {
		pct = r.CurrentValue * 10
	} else {
		pct = r.CurrentValue * 100
	}
	if math.IsNaN(pct) || pct < 0 {
		return 0
	}
	return math.Min(100, pct)
}
