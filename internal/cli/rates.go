package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stacksolutions/estimator/internal/format"
	"github.com/stacksolutions/estimator/internal/ratefile"
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "List the selectable options of the rate table",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadRates()
		if err != nil {
			return err
		}
		c := table.Catalog()

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, c)
		}

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "PROJECT TYPE\tNAME\tMULTIPLIER")
		for _, p := range c.ProjectTypes {
			fmt.Fprintf(tw, "%s\t%s\t%.2f\n", p.ID, p.Name, p.Multiplier)
		}
		fmt.Fprintln(tw, "\nCOMPLEXITY\tNAME\tMULTIPLIER")
		for _, l := range c.ComplexityLevels {
			fmt.Fprintf(tw, "%s\t%s\t%.2f\n", l.ID, l.Name, l.Multiplier)
		}
		fmt.Fprintln(tw, "\nFEATURE\tNAME\tCOST\tWEEKS")
		for _, f := range c.Features {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", f.ID, f.Name, format.FormatCurrency(f.Cost), f.Weeks)
		}
		fmt.Fprintln(tw, "\nROI CATEGORY\tNAME\tEFFICIENCY\tREVENUE\tENGAGEMENT")
		for _, r := range c.ROICategories {
			fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%s\n", r.ID, r.Name, r.EfficiencyMultiplier, r.RevenueMultiplier, format.FormatCurrency(r.EngagementCost))
		}
		return tw.Flush()
	},
}

var ratesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the rate table as YAML, ready to edit and load with --rates",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadRates()
		if err != nil {
			return err
		}
		data, err := ratefile.Marshal(table)
		if err != nil {
			return fmt.Errorf("failed to encode rates: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	ratesCmd.AddCommand(ratesExportCmd)
	RootCmd.AddCommand(ratesCmd)
}
