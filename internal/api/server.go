// Package api exposes a small review API over stored resultsets and the
// pending actual-value dumps produced by failing assertions.
package api

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/alevsk/resultset/internal/config"
	"github.com/alevsk/resultset/internal/jsonutil"
	"github.com/alevsk/resultset/internal/logger"
	"github.com/alevsk/resultset/internal/snapshot"
)

// Server represents the review API server
type Server struct {
	router   *mux.Router
	asserter *snapshot.Asserter
}

// NewServer creates a new API server instance
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		asserter: snapshot.New(cfg),
	}
	s.routes()
	return s
}

// routes sets up the API routes
func (s *Server) routes() {
	s.router.HandleFunc("/api/v1/health", s.healthCheck).Methods("GET")
	s.router.HandleFunc("/api/v1/snapshots", s.listSnapshots).Methods("GET")
	s.router.HandleFunc("/api/v1/pending", s.listPending).Methods("GET")
	s.router.HandleFunc("/api/v1/pending/{name}/diff", s.pendingDiff).Methods("GET")
}

// Start starts the API server
func (s *Server) Start(addr string) error {
	logger.Info().Str("addr", addr).Msg("starting review server")
	return http.ListenAndServe(addr, s.router)
}

// Handler returns the underlying HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := jsonutil.MarshalWrite(w, v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// healthCheck handles the health check endpoint
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "healthy"})
}

// listSnapshots returns every stored resultset under the root
func (s *Server) listSnapshots(w http.ResponseWriter, r *http.Request) {
	infos, err := s.asserter.Snapshots()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if infos == nil {
		infos = []snapshot.Info{}
	}
	s.writeJSON(w, infos)
}

// listPending returns the actual-value dumps awaiting review
func (s *Server) listPending(w http.ResponseWriter, r *http.Request) {
	pending, err := s.asserter.Pending()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if pending == nil {
		pending = []snapshot.Pending{}
	}
	s.writeJSON(w, pending)
}

// pendingDiff returns the unified diff between a pending dump and its
// stored resultset
func (s *Server) pendingDiff(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	pending, err := s.asserter.Pending()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for _, p := range pending {
		if p.Name != name {
			continue
		}
		if p.ExpectedPath == "" {
			http.Error(w, fmt.Sprintf("no resultset matched for %s", name), http.StatusConflict)
			return
		}
		expected, err := os.ReadFile(p.ExpectedPath)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		actual, err := os.ReadFile(p.ActualPath)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(expected)),
			B:        difflib.SplitLines(string(actual)),
			FromFile: p.ExpectedPath,
			ToFile:   p.ActualPath,
			Context:  3,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, diff)
		return
	}

	http.Error(w, fmt.Sprintf("no pending dump named %s", name), http.StatusNotFound)
}
