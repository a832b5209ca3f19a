package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stacksolutions/estimator/internal/estimation"
	"github.com/stacksolutions/estimator/internal/format"
	"github.com/stacksolutions/estimator/internal/model"
)

var roiRequest model.ROIEstimateRequest

var roiCmd = &cobra.Command{
	Use:     "roi",
	Short:   "Estimate annual benefit, ROI and payback of an engagement",
	Example: `  estimate roi --revenue 1000000 --team 10 --rate 75 --hours 20 --category web-app`,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadRates()
		if err != nil {
			return err
		}

		result, err := estimation.EstimateROI(table, roiRequest)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, result)
		}
		d := format.ROIDisplay(result)
		fmt.Fprintf(out, "Annual inefficiency cost: %s\n", d.AnnualInefficiencyCost)
		fmt.Fprintf(out, "Potential savings:        %s\n", d.PotentialSavings)
		fmt.Fprintf(out, "Revenue increase:         %s\n", d.RevenueIncrease)
		fmt.Fprintf(out, "ROI:                      %s\n", d.ROIPercentage)
		fmt.Fprintf(out, "Payback:                  %s\n", d.Payback)
		return nil
	},
}

func init() {
	roiCmd.Flags().Float64Var(&roiRequest.CurrentRevenue, "revenue", 0, "current annual revenue")
	roiCmd.Flags().IntVar(&roiRequest.TeamSize, "team", 0, "team size")
	roiCmd.Flags().Float64Var(&roiRequest.HourlyRate, "rate", 0, "average hourly rate")
	roiCmd.Flags().Float64Var(&roiRequest.InefficiencyHours, "hours", 0, "weekly hours lost per person")
	roiCmd.Flags().StringVar(&roiRequest.Category, "category", "", "roi category id (see: estimate rates)")
	_ = roiCmd.MarkFlagRequired("category")
	RootCmd.AddCommand(roiCmd)
}
