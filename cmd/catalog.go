package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AnjosHD-Black/bmw-offer-pilot/internal/utils"
	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/catalog"
	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/storage"
	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/sync"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the local option catalog database",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a catalog JSON file into the local database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.LoadFile(args[0])
		if err != nil {
			return err
		}

		opts := make([]catalog.Option, 0, len(cat))
		for _, opt := range cat {
			opts = append(opts, opt)
		}
		sort.Slice(opts, func(i, j int) bool { return opts[i].Code < opts[j].Code })

		dbPath, _ := cmd.Flags().GetString("dbpath")
		db, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		changes, err := db.UpsertOptions(context.Background(), opts)
		if err != nil {
			return err
		}

		added, updated := 0, 0
		for _, c := range changes {
			switch c.ChangeType {
			case "added":
				added++
			case "updated":
				updated++
			}
		}
		utils.Log.Infof("Imported %d options (%d added, %d updated, %d unchanged)",
			len(opts), added, updated, len(opts)-added-updated)
		return nil
	},
}

var catalogSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the remote catalog and store it in the local database",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, _ := cmd.Flags().GetString("url")
		if url == "" {
			url = viper.GetString("catalog.sync_url")
		}
		if url == "" {
			return fmt.Errorf("no sync URL configured (set catalog.sync_url in the config file or pass --url)")
		}
		token, _ := cmd.Flags().GetString("token")
		if token == "" {
			token = viper.GetString("catalog.sync_token")
		}

		dbPath, _ := cmd.Flags().GetString("dbpath")
		db, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		_, err = sync.Run(context.Background(), sync.Config{URL: url, Token: token}, db)
		return err
	},
}

var catalogStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-category option and price-rule counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("dbpath")
		db, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.Stats(context.Background())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "CATEGORY\tOPTIONS\tPRICE RULES\t")
		total, totalRules := 0, 0
		for _, s := range stats {
			fmt.Fprintf(w, "%s\t%d\t%d\t\n", s.Category, s.Options, s.RuleCount)
			total += s.Options
			totalRules += s.RuleCount
		}
		fmt.Fprintf(w, "TOTAL\t%d\t%d\t\n", total, totalRules)
		w.Flush()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogSyncCmd)
	catalogCmd.AddCommand(catalogStatsCmd)

	catalogSyncCmd.Flags().String("url", "", "Catalog source URL (overrides catalog.sync_url)")
	catalogSyncCmd.Flags().String("token", "", "Bearer token for the catalog source (overrides catalog.sync_token)")
}
