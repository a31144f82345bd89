package server

import (
	"context"
	"net/http"

	"github.com/AnjosHD-Black/bmw-offer-pilot/internal/utils"
	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/catalog"
)

// CatalogSource hands out read-only catalog snapshots. Each request resolves
// against its own snapshot; the server never mutates one.
type CatalogSource interface {
	Snapshot(ctx context.Context) (catalog.Catalog, error)
}

type Server struct {
	Catalog  CatalogSource
	Username string
	Password string
}

func New(src CatalogSource, user, pass string) *Server {
	return &Server{
		Catalog:  src,
		Username: user,
		Password: pass,
	}
}

func (s *Server) Start(addr string) error {
	utils.Log.Infof("starting server on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// Handler builds the route table. Split from Start for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/quotes", s.basicAuth(s.handleGenerate))
	mux.HandleFunc("POST /api/quotes/preview", s.basicAuth(s.handlePreview))
	mux.HandleFunc("GET /api/options", s.basicAuth(s.handleOptions))
	mux.HandleFunc("GET /api/stats", s.basicAuth(s.handleStats))

	return mux
}

func (s *Server) basicAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Username == "" && s.Password == "" {
			next(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != s.Username || pass != s.Password {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}
