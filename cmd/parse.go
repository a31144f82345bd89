package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/pricing"
	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/vehicle"
)

// parseCmd represents the parse command. It runs the normalization pipeline
// without rendering anything, which is the quickest way to debug a request.
var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Normalize a quotation request and print the configuration as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")

		req, err := readRequest(input)
		if err != nil {
			return err
		}

		overrides, err := pricing.ParseLines(req.PricedLines)
		if err != nil {
			return err
		}

		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		cfg := vehicle.Normalize(req.AllCodes, overrides, cat)

		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringP("input", "i", "request.json", "Path to the quotation request JSON file")
}
