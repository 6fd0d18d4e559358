package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"image-processing-engine/internal/config"
	"image-processing-engine/internal/layers"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Replay the steps from --config over an image",
	Long: `Runs every [[steps]] entry of the configuration file in order. Disabled steps
are skipped; a step with opacity below 1 is blended over the previous result.`,
	RunE: runPipeline,
}

func init() {
	pipelineCmd.Flags().StringVar(&inPath, "in", "", "Input image path (required)")
	pipelineCmd.Flags().StringVar(&withPath, "with", "", "Second image for two-image steps")
	pipelineCmd.Flags().StringVar(&outPath, "out", "out.png", "Output image path")

	pipelineCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(pipelineCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	stack, err := buildStack(logger, cfg)
	if err != nil {
		return err
	}

	primary, secondary, err := loadOperands(loader, inPath, withPath)
	if err != nil {
		return err
	}

	result, err := stack.Process(primary, secondary)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"steps":  len(stack.Layers()),
		"output": outPath,
	}).Info("Pipeline complete")

	return loader.Save(result, outPath)
}

// buildStack turns configured steps into a layer stack
func buildStack(l logrus.FieldLogger, c *config.Config) (*layers.Stack, error) {
	if len(c.Steps) == 0 {
		return nil, fmt.Errorf("no steps configured; pass --config with [[steps]] entries")
	}

	stack := layers.NewStack(l)
	for i, step := range c.Steps {
		params, err := c.StepParams(step)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Operation, err)
		}

		id, err := stack.AddLayer(step.Name, step.Operation, params)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Operation, err)
		}
		if err := stack.SetEnabled(id, step.IsEnabled()); err != nil {
			return nil, err
		}
		if err := stack.SetOpacity(id, step.OpacityOrDefault()); err != nil {
			return nil, err
		}
	}
	return stack, nil
}
