package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/pricing"
	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/render/excel"
	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/render/pdf"
	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/vehicle"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a quotation document from a request file",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")

		req, err := readRequest(input)
		if err != nil {
			return err
		}
		if format, _ := cmd.Flags().GetString("format"); format != "" {
			req.Format = format
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

		date := time.Now()
		if req.Date != "" {
			if date, err = time.Parse("2006-01-02", req.Date); err != nil {
				return fmt.Errorf("bad date %q (use YYYY-MM-DD)", req.Date)
			}
		}

		switch strings.ToLower(req.Format) {
		case "excel":
			if output == "" {
				output = fmt.Sprintf("Quotation_%s.xlsx", uuid.NewString()[:8])
			}
			f, err := excel.Build(cfg, excel.Meta{Model: req.Model, Color: req.Color, Interior: req.Interior, Date: date})
			if err != nil {
				return err
			}
			defer f.Close()
			if err := f.SaveAs(output); err != nil {
				return err
			}
		case "pdf":
			if output == "" {
				output = fmt.Sprintf("Quotation_%s.pdf", uuid.NewString()[:8])
			}
			out, err := os.Create(output)
			if err != nil {
				return err
			}
			defer out.Close()
			if err := pdf.Build(cfg, pdf.Meta{Model: req.Model, Color: req.Color, Interior: req.Interior, Date: date}, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown format %q (use \"excel\" or \"pdf\")", req.Format)
		}

		fmt.Println(output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringP("input", "i", "request.json", "Path to the quotation request JSON file")
	generateCmd.Flags().StringP("output", "o", "", "Output file path (default derived from format)")
	generateCmd.Flags().StringP("format", "f", "", "Override the request's output format (excel or pdf)")
}
