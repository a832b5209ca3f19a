package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stacksolutions/estimator/internal/estimation"
	"github.com/stacksolutions/estimator/internal/format"
	"github.com/stacksolutions/estimator/internal/model"
)

var (
	projectType       string
	projectComplexity string
	projectFeatures   []string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Estimate cost and duration of a project",
	Example: `  estimate project --type web --complexity simple
  estimate project --type mobile --complexity complex --feature auth --feature payment`,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadRates()
		if err != nil {
			return err
		}

		result, err := estimation.EstimateProject(table, model.ProjectEstimateRequest{
			Type:       projectType,
			Complexity: projectComplexity,
			Features:   projectFeatures,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, result)
		}
		d := format.ProjectDisplay(result)
		fmt.Fprintf(out, "Cost:       %s\n", d.CostRange)
		fmt.Fprintf(out, "Duration:   %s\n", d.DurationRange)
		fmt.Fprintf(out, "Confidence: %s\n", d.Confidence)
		return nil
	},
}

func init() {
	projectCmd.Flags().StringVar(&projectType, "type", "", "project type id (see: estimate rates)")
	projectCmd.Flags().StringVar(&projectComplexity, "complexity", "", "complexity id")
	projectCmd.Flags().StringArrayVar(&projectFeatures, "feature", nil, "feature id, repeatable")
	_ = projectCmd.MarkFlagRequired("type")
	_ = projectCmd.MarkFlagRequired("complexity")
	RootCmd.AddCommand(projectCmd)
}
