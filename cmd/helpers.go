package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/catalog"
	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/storage"
	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/vehicle"
)

// loadCatalog resolves the catalog source for a command: an explicit JSON file
// via --catalog, otherwise a snapshot from the sqlite database.
func loadCatalog(cmd *cobra.Command) (catalog.Catalog, error) {
	if path, _ := cmd.Flags().GetString("catalog"); path != "" {
		return catalog.LoadFile(path)
	}

	dbPath, _ := cmd.Flags().GetString("dbpath")
	if _, err := os.Stat(dbPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("catalog database not found: %s (run 'offerpilot catalog import' or pass --catalog)", dbPath)
		}
		return nil, err
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return db.Snapshot(context.Background())
}

// readRequest loads a quotation request from a JSON file.
func readRequest(path string) (vehicle.Request, error) {
	var req vehicle.Request
	data, err := os.ReadFile(path)
	if err != nil {
		return req, err
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("decoding request %s: %w", path, err)
	}
	return req, nil
}
