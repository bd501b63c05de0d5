package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/financial-report-aggregator/internal/config"
	"github.com/kirillkom/financial-report-aggregator/internal/core/domain"
	"github.com/kirillkom/financial-report-aggregator/internal/core/ports"
)

// maxBatchUploadBytes caps the multipart memory buffer; larger parts spill
// to temp files managed by net/http.
const maxBatchUploadBytes = 64 << 20

type Router struct {
	cfg    config.Config
	ingest ports.BatchIngestor
	reader ports.BatchReader
}

func NewRouter(cfg config.Config, ingest ports.BatchIngestor, reader ports.BatchReader) *Router {
	return &Router{
		cfg:    cfg,
		ingest: ingest,
		reader: reader,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/batches", rt.createBatch)
	mux.HandleFunc("/v1/batches/", rt.getBatchByID)

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, 250*time.Millisecond)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) createBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	if err := r.ParseMultipartForm(maxBatchUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart form is required"})
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'files' is required"})
		return
	}

	uploads := make([]ports.BatchUpload, 0, len(fileHeaders))
	closers := make([]func() error, 0, len(fileHeaders))
	defer func() {
		for _, closeFn := range closers {
			_ = closeFn()
		}
	}()
	for _, header := range fileHeaders {
		file, err := header.Open()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable multipart part " + header.Filename})
			return
		}
		closers = append(closers, file.Close)
		uploads = append(uploads, ports.BatchUpload{
			Filename: header.Filename,
			Body:     file,
		})
	}

	batch, err := rt.ingest.Upload(
		r.Context(),
		r.FormValue("month"),
		r.FormValue("year"),
		uploads,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, batch)
}

func (rt *Router) getBatchByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/batches/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "batch id is required"})
		return
	}

	batch, err := rt.reader.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response := struct {
		*domain.Batch
		Result *domain.BatchResult `json:"result,omitempty"`
	}{Batch: batch}

	if batch.Status == domain.StatusReady {
		result, err := rt.reader.GetResult(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		response.Result = result
	}

	writeJSON(w, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
