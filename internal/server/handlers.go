package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AnjosHD-Black/bmw-offer-pilot/internal/utils"
	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/pricing"
	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/render/excel"
	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/render/pdf"
	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/vehicle"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// normalizeRequest runs the shared front half of the quote handlers: decode,
// parse priced lines, normalize against a fresh catalog snapshot. A
// FormatError from the priced-line parser is the client's fault.
func (s *Server) normalizeRequest(w http.ResponseWriter, r *http.Request) (vehicle.Request, vehicle.Configuration, bool) {
	var req vehicle.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return req, vehicle.Configuration{}, false
	}

	overrides, err := pricing.ParseLines(req.PricedLines)
	if err != nil {
		var fe *pricing.FormatError
		if errors.As(err, &fe) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return req, vehicle.Configuration{}, false
	}

	cat, err := s.Catalog.Snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return req, vehicle.Configuration{}, false
	}

	return req, vehicle.Normalize(req.AllCodes, overrides, cat), true
}

func requestMeta(req vehicle.Request) (time.Time, error) {
	if req.Date == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", req.Date)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, cfg, ok := s.normalizeRequest(w, r)
	if !ok {
		return
	}

	date, err := requestMeta(req)
	if err != nil {
		http.Error(w, "bad date (use YYYY-MM-DD): "+req.Date, http.StatusBadRequest)
		return
	}

	quoteID := uuid.NewString()

	switch strings.ToLower(req.Format) {
	case "excel":
		f, err := excel.Build(cfg, excel.Meta{Model: req.Model, Color: req.Color, Interior: req.Interior, Date: date})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer f.Close()

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="Quotation_`+quoteID+`.xlsx"`)
		w.Header().Set("X-Quote-ID", quoteID)
		if err := f.Write(w); err != nil {
			// Headers are gone already; just note it.
			utils.Log.Warnf("writing workbook response: %v", err)
		}
	case "pdf":
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="Quotation_`+quoteID+`.pdf"`)
		w.Header().Set("X-Quote-ID", quoteID)
		if err := pdf.Build(cfg, pdf.Meta{Model: req.Model, Color: req.Color, Interior: req.Interior, Date: date}, w); err != nil {
			utils.Log.Warnf("writing pdf response: %v", err)
		}
	default:
		http.Error(w, `unknown format (use "excel" or "pdf")`, http.StatusBadRequest)
	}
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	_, cfg, ok := s.normalizeRequest(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cfg)
}

// OptionInfo is the catalog listing item returned by GET /api/options.
type OptionInfo struct {
	Code      string `json:"code"`
	Category  string `json:"category"`
	Text      string `json:"text"`
	RuleCount int    `json:"rule_count"`
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	cat, err := s.Catalog.Snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	infos := make([]OptionInfo, 0, len(cat))
	for _, opt := range cat {
		infos = append(infos, OptionInfo{
			Code:      opt.Code,
			Category:  opt.Category.String(),
			Text:      opt.DisplayText(),
			RuleCount: len(opt.Prices),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Code < infos[j].Code })

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(infos)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	cat, err := s.Catalog.Snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	counts := make(map[string]int)
	for _, opt := range cat {
		counts[opt.Category.String()]++
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(counts)
}
