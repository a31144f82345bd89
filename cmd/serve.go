package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AnjosHD-Black/bmw-offer-pilot/internal/server"
	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/catalog"
	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/storage"
)

// fileSource serves snapshots from a JSON catalog file, re-reading it on each
// request so edits show up without a restart.
type fileSource struct {
	path string
}

func (f fileSource) Snapshot(ctx context.Context) (catalog.Catalog, error) {
	return catalog.LoadFile(f.path)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the quotation HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		bind, _ := cmd.Flags().GetString("bind")

		user, _ := cmd.Flags().GetString("username")
		if user == "" {
			user = viper.GetString("server.username")
		}
		pass, _ := cmd.Flags().GetString("password")
		if pass == "" {
			pass = viper.GetString("server.password")
		}

		var src server.CatalogSource
		if path, _ := cmd.Flags().GetString("catalog"); path != "" {
			if _, err := catalog.LoadFile(path); err != nil {
				return fmt.Errorf("loading catalog %s: %w", path, err)
			}
			src = fileSource{path: path}
		} else {
			dbPath, _ := cmd.Flags().GetString("dbpath")
			if _, err := os.Stat(dbPath); err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("catalog database not found: %s (run 'offerpilot catalog import' or pass --catalog)", dbPath)
				}
				return err
			}
			db, err := storage.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			src = db
		}

		return server.New(src, user, pass).Start(bind)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("bind", "b", ":9999", "Address to listen on")
	serveCmd.Flags().StringP("username", "u", "", "Basic auth username (default from server.username)")
	serveCmd.Flags().StringP("password", "p", "", "Basic auth password (default from server.password)")
}
