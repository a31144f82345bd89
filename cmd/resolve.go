package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnjosHD-Black/bmw-offer-pilot/internal/utils"
	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/pricing"
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve CODE [CODE...]",
	Short: "Resolve option prices as of a given date using the catalog price rules",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, code := range args {
			if !utils.IsOptionCode(code) {
				return fmt.Errorf("invalid option code: %s (expected 3 uppercase alphanumeric characters)", code)
			}
		}

		dateStr, _ := cmd.Flags().GetString("date")
		asOf := time.Now()
		if dateStr != "" {
			var err error
			if asOf, err = time.Parse("2006-01-02", dateStr); err != nil {
				return fmt.Errorf("bad date %q (use YYYY-MM-DD)", dateStr)
			}
		}

		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		resolved, err := pricing.ResolveOptions(args, cat, asOf)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "CODE\tTYPE\tDESCRIPTION\tPRICE\t")
		for _, r := range resolved {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", r.Code, r.Type, r.Description, r.Price.StringFixed(2))
		}
		w.Flush()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().String("date", "", "Resolution date in YYYY-MM-DD format (default today)")
}
