package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"image-processing-engine/internal/algorithms"
	"image-processing-engine/internal/core"
	"image-processing-engine/internal/metrics"
)

var (
	perChannel bool
	asJSON     bool
)

var histogramCmd = &cobra.Command{
	Use:   "histogram",
	Short: "Print the luma (or per-channel) histogram of an image",
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, err := loader.Load(inPath)
		if err != nil {
			return err
		}
		return writeHistogram(cmd.OutOrStdout(), buf, perChannel, asJSON)
	},
}

func init() {
	histogramCmd.Flags().StringVar(&inPath, "in", "", "Input image path (required)")
	histogramCmd.Flags().BoolVar(&perChannel, "channels", false, "Report R, G and B separately")
	histogramCmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")

	histogramCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(histogramCmd)
}

type histogramReport struct {
	Channel string                   `json:"channel"`
	Buckets algorithms.Histogram     `json:"buckets"`
	Summary metrics.HistogramSummary `json:"summary"`
	Stats   *metrics.ChannelStat     `json:"stats,omitempty"`
}

func buildHistogramReports(buf *core.PixelBuffer, channels bool) ([]histogramReport, error) {
	if !channels {
		h, err := algorithms.ComputeHistogram(buf)
		if err != nil {
			return nil, err
		}
		s, err := metrics.SummarizeHistogram(h)
		if err != nil {
			return nil, err
		}
		return []histogramReport{{Channel: "luma", Buckets: h, Summary: s}}, nil
	}

	hs, err := algorithms.ChannelHistograms(buf)
	if err != nil {
		return nil, err
	}
	cs, err := metrics.ChannelStats(buf)
	if err != nil {
		return nil, err
	}

	reports := make([]histogramReport, 0, len(hs))
	for i, name := range []string{"red", "green", "blue"} {
		s, err := metrics.SummarizeHistogram(hs[i])
		if err != nil {
			return nil, err
		}
		stat := cs[i]
		reports = append(reports, histogramReport{Channel: name, Buckets: hs[i], Summary: s, Stats: &stat})
	}
	return reports, nil
}

func writeHistogram(w io.Writer, buf *core.PixelBuffer, channels, jsonOut bool) error {
	reports, err := buildHistogramReports(buf, channels)
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	for _, r := range reports {
		fmt.Fprintf(w, "# %s: pixels=%d mean=%.2f median=%.1f stddev=%.2f min=%d max=%d mode=%d\n",
			r.Channel, r.Summary.Pixels, r.Summary.Mean, r.Summary.Median, r.Summary.StdDev,
			r.Summary.Min, r.Summary.Max, r.Summary.Mode)
		for level, count := range r.Buckets {
			if count > 0 {
				fmt.Fprintf(w, "%3d %d\n", level, count)
			}
		}
	}
	return nil
}
