// Package cli implements the estimate command line tool.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/stacksolutions/estimator/internal/estimation"
	"github.com/stacksolutions/estimator/internal/ratefile"
)

var (
	Version = "dev"

	ratesFile  string
	jsonOutput bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "estimate",
	Version: Version,
	Short:   "Quote project cost, timeline and ROI from the command line",
	Long: `estimate computes the same project and ROI quotes as the estimator API,
offline, from the built-in rate table or a YAML rate file.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVar(&ratesFile, "rates", "", "YAML rate table (default: built-in rates)")
	RootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of text")
}

func loadRates() (*estimation.RateTable, error) {
	if ratesFile == "" {
		return estimation.DefaultRateTable(), nil
	}
	t, err := ratefile.Load(ratesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load rates: %w", err)
	}
	return t, nil
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
