// Package inspect serves a read-only JSON view of a loaded config.Container.
//
// Routes:
//
//	GET /datasets                 indexes in load order
//	GET /datasets/{index}         whole dataset stored at index
//	GET /datasets/{index}/{key}   one top-level key of a dataset
//	GET /walk/{path...}           a colon-delimited Walk path
package inspect

import (
	"encoding/json"
	"log/slog"
	"net/http"

	config "github.com/volnix/config"
	"github.com/volnix/config/listener/middleware"
)

// Handler serves the inspection routes for one Container.
type Handler struct {
	container *config.Container
	mux       *http.ServeMux
}

// New creates the bare inspection handler without middleware.
func New(container *config.Container) *Handler {
	handler := &Handler{
		container: container,
		mux:       http.NewServeMux(),
	}

	handler.mux.HandleFunc("GET /datasets", handler.listDatasets)
	handler.mux.HandleFunc("GET /datasets/{index}", handler.getDataset)
	handler.mux.HandleFunc("GET /datasets/{index}/{key}", handler.getKey)
	handler.mux.HandleFunc("GET /walk/{path...}", handler.walk)

	return handler
}

// NewHandler returns the inspection routes wrapped with request ID, panic
// recovery and access logging.
func NewHandler(container *config.Container) http.Handler {
	return middleware.Chain(New(container),
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logging(),
	)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type datasetList struct {
	Environment string   `json:"environment"`
	Indexes     []string `json:"indexes"`
}

type valueResponse struct {
	Index string `json:"index,omitempty"`
	Key   string `json:"key,omitempty"`
	Path  string `json:"path,omitempty"`
	Value any    `json:"value"`
}

func (h *Handler) listDatasets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, datasetList{
		Environment: h.container.Environment(),
		Indexes:     h.container.Indexes(),
	})
}

func (h *Handler) getDataset(w http.ResponseWriter, r *http.Request) {
	index := r.PathValue("index")

	dataset, ok := h.container.Lookup(index)
	if !ok {
		writeError(w, http.StatusNotFound, "index not loaded: "+index)

		return
	}

	writeJSON(w, http.StatusOK, dataset)
}

func (h *Handler) getKey(w http.ResponseWriter, r *http.Request) {
	index := r.PathValue("index")
	key := r.PathValue("key")

	dataset, ok := h.container.Lookup(index)
	if !ok {
		writeError(w, http.StatusNotFound, "index not loaded: "+index)

		return
	}

	value, ok := dataset[key]
	if !ok {
		writeError(w, http.StatusNotFound, "key not found: "+key)

		return
	}

	writeJSON(w, http.StatusOK, valueResponse{Index: index, Key: key, Value: value})
}

func (h *Handler) walk(w http.ResponseWriter, r *http.Request) {
	path := r.PathValue("path")

	value, ok := h.container.Resolve(path)
	if !ok {
		writeError(w, http.StatusNotFound, "path not found: "+path)

		return
	}

	writeJSON(w, http.StatusOK, valueResponse{Path: path, Value: value})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("failed to encode inspection response", slog.String("error", err.Error()))
	}
}
