// Package sync fetches the option catalog from a remote pricing endpoint and
// upserts it into local storage.
package sync

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/AnjosHD-Black/bmw-offer-pilot/internal/utils"
	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/catalog"
	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/storage"
)

// Config controls a catalog sync run.
type Config struct {
	URL    string
	Token  string
	Client *retryablehttp.Client // nil = default retry client
}

// Fetch downloads the remote catalog document and decodes it leniently. The
// document is a JSON object keyed by option code; per option only "category"
// is expected, everything else (type, text, label, description, prices) is
// probed and may be absent. Price rules with an unparseable date or price are
// skipped with a warning instead of failing the whole sync.
func Fetch(ctx context.Context, cfg Config) ([]catalog.Option, error) {
	client := cfg.Client
	if client == nil {
		client = retryablehttp.NewClient()
		client.RetryMax = 3
		client.Logger = nil
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, cfg.URL, nil)
	if err != nil {
		return nil, err
	}
	if cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog endpoint returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return decode(body)
}

func decode(body []byte) ([]catalog.Option, error) {
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return nil, fmt.Errorf("catalog endpoint returned a non-object document")
	}

	var opts []catalog.Option
	doc.ForEach(func(code, meta gjson.Result) bool {
		opt := catalog.Option{
			Code:        code.String(),
			Category:    catalog.ParseCategory(meta.Get("category").String()),
			Type:        meta.Get("type").String(),
			Text:        meta.Get("text").String(),
			Label:       meta.Get("label").String(),
			Description: meta.Get("description").String(),
		}

		meta.Get("prices").ForEach(func(_, rule gjson.Result) bool {
			from, err := time.Parse("2006-01-02", rule.Get("from").String())
			if err != nil {
				utils.Log.Warnf("option %s: skipping price rule with bad date %q", opt.Code, rule.Get("from").String())
				return true
			}
			price, err := decimalFromResult(rule.Get("price"))
			if err != nil {
				utils.Log.Warnf("option %s: skipping price rule with bad price %q", opt.Code, rule.Get("price").Raw)
				return true
			}
			opt.Prices = append(opt.Prices, catalog.Rule{EffectiveFrom: from, Price: price})
			return true
		})

		// Storage and resolution both expect ascending date order.
		sort.Slice(opt.Prices, func(i, j int) bool {
			return opt.Prices[i].EffectiveFrom.Before(opt.Prices[j].EffectiveFrom)
		})

		opts = append(opts, opt)
		return true
	})

	return opts, nil
}

// decimalFromResult converts a gjson value to a decimal without a float
// round-trip for JSON numbers.
func decimalFromResult(r gjson.Result) (decimal.Decimal, error) {
	if r.Type == gjson.String {
		return decimal.NewFromString(r.Str)
	}
	if r.Type != gjson.Number {
		return decimal.Decimal{}, fmt.Errorf("not a number: %s", r.Raw)
	}
	return decimal.NewFromString(r.Raw)
}

// Run fetches the remote catalog and upserts it into the database, logging a
// summary of what changed.
func Run(ctx context.Context, cfg Config, db *storage.DB) ([]storage.Change, error) {
	opts, err := Fetch(ctx, cfg)
	if err != nil {
		return nil, err
	}
	utils.Log.Infof("fetched %d catalog options from %s", len(opts), cfg.URL)

	changes, err := db.UpsertOptions(ctx, opts)
	if err != nil {
		return nil, err
	}

	var added, updated int
	for _, c := range changes {
		switch c.ChangeType {
		case "added":
			added++
		case "updated":
			updated++
		}
	}
	utils.Log.Infof("catalog sync done: %d added, %d updated, %d unchanged", added, updated, len(opts)-added-updated)

	return changes, nil
}
