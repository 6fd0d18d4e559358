package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"image-processing-engine/internal/algorithms"
)

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "List operations by category",
	Run: func(cmd *cobra.Command, args []string) {
		listOperations(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(opsCmd)
}

func listOperations(w io.Writer) {
	byCategory := algorithms.GetAlgorithmsByCategory()
	for _, category := range algorithms.CategoryOrder {
		fmt.Fprintf(w, "%s:\n", category)
		for _, name := range byCategory[category] {
			alg, _ := algorithms.Get(name)

			params := make([]string, 0, len(alg.GetParameterInfo()))
			for _, info := range alg.GetParameterInfo() {
				params = append(params, info.Name)
			}
			paramList := "-"
			if len(params) > 0 {
				paramList = strings.Join(params, ",")
			}

			fmt.Fprintf(w, "  %-18s %d  %-28s %s\n", name, alg.Operands(), paramList, alg.GetDescription())
		}
	}
}
