package main

import (
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"image-processing-engine/internal/algorithms"
	"image-processing-engine/internal/core"
	imgio "image-processing-engine/internal/io"
	"image-processing-engine/internal/metrics"
)

var (
	opName      string
	inPath      string
	withPath    string
	outPath     string
	showMetrics bool
	paramFlags  algorithms.Params
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply one operation to an image",
	Long: `Applies a single named operation. Two-image operations (add, blend, and, ...)
take the second image from --with. Run "imglab ops" for the list.`,
	RunE: runApply,
}

func init() {
	defaults := algorithms.DefaultParams()

	applyCmd.Flags().StringVar(&opName, "op", "", "Operation name (required)")
	applyCmd.Flags().StringVar(&inPath, "in", "", "Input image path (required)")
	applyCmd.Flags().StringVar(&withPath, "with", "", "Second image path for two-image operations")
	applyCmd.Flags().StringVar(&outPath, "out", "out.png", "Output image path")
	applyCmd.Flags().BoolVar(&showMetrics, "metrics", false, "Print quality metrics between input and result")
	addParamFlags(applyCmd, &paramFlags, defaults)

	applyCmd.MarkFlagRequired("op")
	applyCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(applyCmd)
}

func addParamFlags(cmd *cobra.Command, p *algorithms.Params, defaults algorithms.Params) {
	cmd.Flags().IntVar(&p.ConstantValue, "constant", defaults.ConstantValue, "Constant for add/subtract, or scale base for multiply/divide (50 = identity)")
	cmd.Flags().Float64Var(&p.BlendFactor, "blend", defaults.BlendFactor, "Weight of the first image in blend [0,1]")
	cmd.Flags().IntVar(&p.ThresholdValue, "threshold", defaults.ThresholdValue, "Threshold level [0,255]")
	cmd.Flags().IntVar(&p.KernelSize, "kernel", defaults.KernelSize, "Odd neighborhood size")
	cmd.Flags().IntVar(&p.OrderValue, "order", defaults.OrderValue, "Rank for the order filter")
	cmd.Flags().Float64Var(&p.SigmaValue, "sigma", defaults.SigmaValue, "Gaussian standard deviation")
}

// mergeParamFlags starts from the configured params and takes only the flags the user set
func mergeParamFlags(cmd *cobra.Command, base, flags algorithms.Params) algorithms.Params {
	p := base
	f := cmd.Flags()
	if f.Changed("constant") {
		p.ConstantValue = flags.ConstantValue
	}
	if f.Changed("blend") {
		p.BlendFactor = flags.BlendFactor
	}
	if f.Changed("threshold") {
		p.ThresholdValue = flags.ThresholdValue
	}
	if f.Changed("kernel") {
		p.KernelSize = flags.KernelSize
	}
	if f.Changed("order") {
		p.OrderValue = flags.OrderValue
	}
	if f.Changed("sigma") {
		p.SigmaValue = flags.SigmaValue
	}
	return p
}

func runApply(cmd *cobra.Command, args []string) error {
	params := mergeParamFlags(cmd, cfg.Params, paramFlags)

	primary, secondary, err := loadOperands(loader, inPath, withPath)
	if err != nil {
		return err
	}

	result, err := applyOperation(logger, opName, primary, secondary, params)
	if err != nil {
		return err
	}

	if err := loader.Save(result, outPath); err != nil {
		return err
	}

	if showMetrics {
		printMetrics(cmd.OutOrStdout(), primary, result)
	}
	return nil
}

func loadOperands(l *imgio.ImageLoader, primaryPath, secondaryPath string) (*core.PixelBuffer, *core.PixelBuffer, error) {
	primary, err := l.Load(primaryPath)
	if err != nil {
		return nil, nil, err
	}
	if secondaryPath == "" {
		return primary, nil, nil
	}
	secondary, err := l.Load(secondaryPath)
	if err != nil {
		return nil, nil, err
	}
	return primary, secondary, nil
}

func applyOperation(l logrus.FieldLogger, name string, primary, secondary *core.PixelBuffer, params algorithms.Params) (*core.PixelBuffer, error) {
	start := time.Now()
	result, err := algorithms.Apply(name, primary, secondary, params)
	if err != nil {
		return nil, err
	}

	l.WithFields(logrus.Fields{
		"operation": name,
		"width":     result.Width,
		"height":    result.Height,
		"elapsed":   time.Since(start).String(),
	}).Info("Operation applied")
	return result, nil
}

func printMetrics(w io.Writer, original, processed *core.PixelBuffer) {
	results := metrics.NewEvaluator().CalculateAll(original, processed)

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		v := results[name]
		if math.IsInf(v, 1) {
			fmt.Fprintf(w, "%-5s inf\n", name)
			continue
		}
		fmt.Fprintf(w, "%-5s %.4f\n", name, v)
	}
}
