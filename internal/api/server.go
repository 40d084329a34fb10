package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/covenscan/nft-indexer/pkg/marketplace"
	"github.com/covenscan/nft-indexer/pkg/store/accountstore"
	"github.com/covenscan/nft-indexer/pkg/store/interactionstore"
	"github.com/covenscan/nft-indexer/pkg/store/transferstore"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

type APIErrorResponse struct {
	Status    string    `json:"status"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// Handler serves the read-only query surface over the derived records.
type Handler struct {
	version      string
	accounts     accountstore.Store
	transfers    transferstore.Store
	interactions interactionstore.Store
}

func NewHandler(
	version string,
	accounts accountstore.Store,
	transfers transferstore.Store,
	interactions interactionstore.Store,
) *Handler {
	return &Handler{
		version:      version,
		accounts:     accounts,
		transfers:    transfers,
		interactions: interactions,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.HandleHealth)
	mux.HandleFunc("/accounts", h.HandleAccounts)
	mux.HandleFunc("/accounts/", h.HandleAccount)
	mux.HandleFunc("/interactions", h.HandleInteractions)
	mux.HandleFunc("/transfers", h.HandleTransfers)
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	})
}

// HandleAccounts lists accounts sorted by distinct marketplace count,
// optionally filtered with ?min_marketplaces=N.
func (h *Handler) HandleAccounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	min, err := parseUintParam(r, "min_marketplaces", 0)
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	accounts, err := h.accounts.ListByUniqueMarketplaces(min)
	if err != nil {
		writeErrorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (h *Handler) HandleAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.ToLower(strings.TrimPrefix(r.URL.Path, "/accounts/"))
	if id == "" {
		writeErrorJSON(w, http.StatusBadRequest, "account id is required")
		return
	}

	account, found, err := h.accounts.Get(id)
	if err != nil {
		writeErrorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		writeErrorJSON(w, http.StatusNotFound, "account not found")
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// HandleInteractions lists interaction aggregates for one marketplace tag,
// busiest first: ?marketplace=Tag&min_tx_count=N.
func (h *Handler) HandleInteractions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	name := r.URL.Query().Get("marketplace")
	if name == "" {
		interactions, err := h.interactions.List()
		if err != nil {
			writeErrorJSON(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, interactions)
		return
	}
	if !marketplace.Valid(name) {
		writeErrorJSON(w, http.StatusBadRequest, "unknown marketplace: "+name)
		return
	}

	minTx, err := parseUintParam(r, "min_tx_count", 0)
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	interactions, err := h.interactions.ListByMarketplace(marketplace.Tag(name), minTx)
	if err != nil {
		writeErrorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, interactions)
}

func (h *Handler) HandleTransfers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	transfers, err := h.transfers.List()
	if err != nil {
		writeErrorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, transfers)
}

// Server wraps the handler in an http.Server with sane timeouts.
type Server struct {
	srv *http.Server
}

func NewServer(addr string, h *Handler) *Server {
	mux := http.NewServeMux()
	h.Register(mux)
	return &Server{
		srv: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

func (s *Server) Start() error {
	err := s.srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func parseUintParam(r *http.Request, name string, def uint64) (uint64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIErrorResponse{
		Status:    "error",
		Error:     msg,
		Timestamp: time.Now().UTC(),
	})
}
