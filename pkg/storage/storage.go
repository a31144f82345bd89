// Package storage persists the option catalog in a local sqlite database so
// quotations can be generated without re-reading or re-fetching the catalog
// source every time.
package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/catalog"
)

const dateLayout = "2006-01-02"

type DB struct {
	sql *sql.DB
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS options (
  code          TEXT PRIMARY KEY,
  category      TEXT NOT NULL,
  type          TEXT,
  text          TEXT,
  label         TEXT,
  description   TEXT,
  first_seen_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  last_seen_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS price_rules (
  id             INTEGER PRIMARY KEY,
  option_code    TEXT NOT NULL REFERENCES options(code) ON DELETE CASCADE,
  effective_from TEXT NOT NULL,
  price          TEXT NOT NULL,
  UNIQUE(option_code, effective_from)
);
CREATE INDEX IF NOT EXISTS idx_rules_option ON price_rules(option_code, effective_from);
	`); err != nil {
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// Change captures a single catalog change event for printing.
type Change struct {
	Code       string
	Category   string
	ChangeType string // added | updated
}

// UpsertOptions writes a batch of catalog options, replacing each option's
// price rules wholesale. Returns one Change per option that was added or
// whose metadata actually differed.
func (d *DB) UpsertOptions(ctx context.Context, opts []catalog.Option) ([]Change, error) {
	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var changes []Change
	for _, opt := range opts {
		var (
			category                      string
			typ, text, label, description sql.NullString
		)
		row := tx.QueryRowContext(ctx, "SELECT category, type, text, label, description FROM options WHERE code = ?", opt.Code)
		scanErr := row.Scan(&category, &typ, &text, &label, &description)

		switch {
		case scanErr == sql.ErrNoRows:
			_, err = tx.ExecContext(ctx,
				`INSERT INTO options(code, category, type, text, label, description) VALUES(?,?,?,?,?,?)`,
				opt.Code, opt.Category.String(), nullIfEmpty(opt.Type), nullIfEmpty(opt.Text), nullIfEmpty(opt.Label), nullIfEmpty(opt.Description))
			if err != nil {
				return nil, err
			}
			changes = append(changes, Change{Code: opt.Code, Category: opt.Category.String(), ChangeType: "added"})
		case scanErr != nil:
			err = scanErr
			return nil, err
		default:
			same := category == opt.Category.String() &&
				typ.String == opt.Type && text.String == opt.Text &&
				label.String == opt.Label && description.String == opt.Description
			_, err = tx.ExecContext(ctx,
				`UPDATE options SET category = ?, type = ?, text = ?, label = ?, description = ?, last_seen_at = CURRENT_TIMESTAMP WHERE code = ?`,
				opt.Category.String(), nullIfEmpty(opt.Type), nullIfEmpty(opt.Text), nullIfEmpty(opt.Label), nullIfEmpty(opt.Description), opt.Code)
			if err != nil {
				return nil, err
			}
			if !same {
				changes = append(changes, Change{Code: opt.Code, Category: opt.Category.String(), ChangeType: "updated"})
			}
		}

		if _, err = tx.ExecContext(ctx, "DELETE FROM price_rules WHERE option_code = ?", opt.Code); err != nil {
			return nil, err
		}
		for _, r := range opt.Prices {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO price_rules(option_code, effective_from, price) VALUES(?,?,?)`,
				opt.Code, r.EffectiveFrom.Format(dateLayout), r.Price.String())
			if err != nil {
				return nil, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return changes, nil
}

// Snapshot loads the full catalog. Price rules come back ordered by ascending
// effective_from, which is what list-order price resolution requires.
func (d *DB) Snapshot(ctx context.Context) (catalog.Catalog, error) {
	rows, err := d.sql.QueryContext(ctx, "SELECT code, category, type, text, label, description FROM options")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cat := make(catalog.Catalog)
	for rows.Next() {
		var (
			code, category                string
			typ, text, label, description sql.NullString
		)
		if err := rows.Scan(&code, &category, &typ, &text, &label, &description); err != nil {
			return nil, err
		}
		cat[code] = catalog.Option{
			Code:        code,
			Category:    catalog.ParseCategory(category),
			Type:        typ.String,
			Text:        text.String,
			Label:       label.String,
			Description: description.String,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ruleRows, err := d.sql.QueryContext(ctx, "SELECT option_code, effective_from, price FROM price_rules ORDER BY option_code, effective_from ASC")
	if err != nil {
		return nil, err
	}
	defer ruleRows.Close()

	for ruleRows.Next() {
		var code, from, price string
		if err := ruleRows.Scan(&code, &from, &price); err != nil {
			return nil, err
		}
		opt, ok := cat[code]
		if !ok {
			continue
		}
		effectiveFrom, err := time.Parse(dateLayout, from)
		if err != nil {
			return nil, err
		}
		p, err := decimal.NewFromString(price)
		if err != nil {
			return nil, err
		}
		opt.Prices = append(opt.Prices, catalog.Rule{EffectiveFrom: effectiveFrom, Price: p})
		cat[code] = opt
	}
	return cat, ruleRows.Err()
}

// CategoryStat is a per-category option count.
type CategoryStat struct {
	Category  string
	Options   int
	RuleCount int
}

// Stats returns per-category option and price-rule counts.
func (d *DB) Stats(ctx context.Context) ([]CategoryStat, error) {
	rows, err := d.sql.QueryContext(ctx, `
SELECT o.category, COUNT(DISTINCT o.code), COUNT(r.id)
FROM options o LEFT JOIN price_rules r ON r.option_code = o.code
GROUP BY o.category ORDER BY o.category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []CategoryStat
	for rows.Next() {
		var s CategoryStat
		if err := rows.Scan(&s.Category, &s.Options, &s.RuleCount); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
