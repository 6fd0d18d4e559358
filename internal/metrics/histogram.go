package metrics

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"image-processing-engine/internal/algorithms"
	"image-processing-engine/internal/core"
)

// HistogramSummary describes the distribution of intensity levels in a histogram
type HistogramSummary struct {
	Pixels int     `json:"pixels"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stddev"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Mode   int     `json:"mode"`
}

// SummarizeHistogram computes level statistics for h from its bucket counts.
// Work and memory are proportional to the number of levels, not pixels.
func SummarizeHistogram(h algorithms.Histogram) (HistogramSummary, error) {
	total := h.Total()
	if total == 0 {
		return HistogramSummary{}, fmt.Errorf("histogram is empty")
	}

	counts := make(stats.Float64Data, algorithms.Levels)
	weighted := make(stats.Float64Data, algorithms.Levels)
	summary := HistogramSummary{Pixels: total, Min: -1}
	for level, count := range h {
		counts[level] = float64(count)
		weighted[level] = float64(level) * float64(count)
		if count == 0 {
			continue
		}
		if summary.Min < 0 {
			summary.Min = level
		}
		summary.Max = level
		if count > h[summary.Mode] {
			summary.Mode = level
		}
	}

	n := float64(total)
	sum, err := stats.Sum(weighted)
	if err != nil {
		return HistogramSummary{}, err
	}
	summary.Mean = sum / n

	deviations := make(stats.Float64Data, algorithms.Levels)
	for level, c := range counts {
		d := float64(level) - summary.Mean
		deviations[level] = c * d * d
	}
	squares, err := stats.Sum(deviations)
	if err != nil {
		return HistogramSummary{}, err
	}
	summary.StdDev = math.Sqrt(squares / n)

	cumulative, err := stats.CumulativeSum(counts)
	if err != nil {
		return HistogramSummary{}, err
	}
	// average of the two middle ranks; they coincide when total is odd
	lower := levelAtRank(cumulative, float64((total-1)/2))
	upper := levelAtRank(cumulative, float64(total/2))
	summary.Median = float64(lower+upper) / 2

	return summary, nil
}

// levelAtRank returns the level holding the 0-based rank in sorted pixel order
func levelAtRank(cumulative []float64, rank float64) int {
	for level, c := range cumulative {
		if c > rank {
			return level
		}
	}
	return len(cumulative) - 1
}

// ChannelStat is the mean and standard deviation of one color channel
type ChannelStat struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
}

// ChannelStats computes per-channel R, G, B statistics from the channel histograms
func ChannelStats(buf *core.PixelBuffer) ([3]ChannelStat, error) {
	var result [3]ChannelStat

	hs, err := algorithms.ChannelHistograms(buf)
	if err != nil {
		return result, err
	}
	for c := range hs {
		s, err := SummarizeHistogram(hs[c])
		if err != nil {
			return result, err
		}
		result[c] = ChannelStat{Mean: s.Mean, StdDev: s.StdDev}
	}
	return result, nil
}
