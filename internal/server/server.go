package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"docqa/internal/port"
	"docqa/internal/usecase"
)

// Server is the HTTP façade over the ingest/ask pipeline. One request is
// handled end-to-end on its own goroutine; the registry is the only shared
// state.
type Server struct {
	registry  port.Registry
	ingest    *usecase.IngestUseCase
	ask       *usecase.AskUseCase
	extractor port.Extractor
	dataDir   string
}

func NewServer(
	registry port.Registry,
	ingest *usecase.IngestUseCase,
	ask *usecase.AskUseCase,
	extractor port.Extractor,
	dataDir string,
) *Server {
	return &Server{
		registry:  registry,
		ingest:    ingest,
		ask:       ask,
		extractor: extractor,
		dataDir:   dataDir,
	}
}

// Routes builds the request mux.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /i/{index}/documents", s.handleSaveDocument)
	mux.HandleFunc("GET /i/{index}/documents/{$}", s.handleListDocuments)
	mux.HandleFunc("GET /i/{index}/documents/{id}", s.handleGetDocument)
	// The literal search route is more specific than the {action...} suffix,
	// so "search/{query}" wins for two-segment search paths and the delete
	// route stays registrable alongside it.
	mux.HandleFunc("GET /i/{index}/documents/search/{query}", s.handleSearchDocuments)
	mux.HandleFunc("GET /i/{index}/documents/{id}/{action...}", s.handleDocumentAction)
	mux.HandleFunc("POST /i/{index}/documents/ask", s.handleAsk)
	mux.HandleFunc("POST /i/{index}/documents/scan", s.handleScan)
	mux.HandleFunc("POST /i/{index}/upload", s.handleUpload)

	return logRequests(mux)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeErr(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusRecorder captures the response code for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
