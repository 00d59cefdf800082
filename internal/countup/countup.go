// Package countup animates hero metrics from zero to their final value.
//
// Only genuinely countable metrics animate. A metric literal is split into a
// leading integer and a suffix; literals without a leading integer are shown
// as-is once their entrance delay elapses.
package countup

import (
	"math"
	"regexp"
	"strconv"
	"time"
)

// Duration is the length of every count-up.
const Duration = 800 * time.Millisecond

// Stagger timing: metric i starts StaggerBase + i*StaggerStep after mount.
const (
	StaggerBase = 300 * time.Millisecond
	StaggerStep = 150 * time.Millisecond
)

var numericPrefix = regexp.MustCompile(`(?s)^(\d+)(.*)$`)

// Metric is a parsed metric literal.
type Metric struct {
	Literal  string
	Target   int
	Suffix   string
	Animated bool
}

// Parse splits value into its leading integer and suffix. "100%" yields
// target 100 with suffix "%". "6mo→6wk" matches too: target 6, suffix
// "mo→6wk".
func Parse(value string) Metric {
	m := Metric{Literal: value}
	sub := numericPrefix.FindStringSubmatch(value)
	if sub == nil {
		return m
	}
	n, err := strconv.Atoi(sub[1])
	if err != nil {
		return m
	}
	m.Target, m.Suffix, m.Animated = n, sub[2], true
	return m
}

// Format renders v with the metric's suffix.
func (m Metric) Format(v int) string {
	if !m.Animated {
		return m.Literal
	}
	return strconv.Itoa(v) + m.Suffix
}

// At renders the metric elapsed into a count-up of length d.
func (m Metric) At(elapsed, d time.Duration) string {
	if !m.Animated {
		return m.Literal
	}
	return m.Format(DisplayValue(m.Target, elapsed, d))
}

// EaseOutQuad decelerates toward completion: 1-(1-p)^2.
func EaseOutQuad(p float64) float64 {
	return 1 - (1-p)*(1-p)
}

// Progress returns elapsed/d clamped to [0, 1]. A non-positive d is complete.
func Progress(elapsed, d time.Duration) float64 {
	if d <= 0 {
		return 1
	}
	p := float64(elapsed) / float64(d)
	return min(max(p, 0), 1)
}

// DisplayValue is the integer shown elapsed into a count-up to target. It is
// exactly target once elapsed reaches d.
func DisplayValue(target int, elapsed, d time.Duration) int {
	p := Progress(elapsed, d)
	if p == 1 {
		return target
	}
	return int(math.Round(EaseOutQuad(p) * float64(target)))
}

// Stagger returns the start delay of the i-th metric.
func Stagger(i int) time.Duration {
	return StaggerBase + time.Duration(i)*StaggerStep
}
