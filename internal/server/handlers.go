package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"docqa/internal/adapter/retriever"
	"docqa/internal/domain"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSaveDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}

	id, err := s.ingest.Save(r.PathValue("index"), req.Name, req.Content)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	store, err := s.registry.Get(r.PathValue("index"))
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	chunk, err := store.GetChunk(r.PathValue("id"))
	if errors.Is(err, domain.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Document not found"})
		return
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, chunk)
}

// handleDocumentAction routes "/{id}/{action}" sub-paths. Delete is the only
// action today; anything else is an unknown document path.
func (s *Server) handleDocumentAction(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("action") != "delete" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Document not found"})
		return
	}
	s.handleDeleteDocument(w, r)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	store, err := s.registry.Get(r.PathValue("index"))
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	if err := store.DeleteChunk(r.PathValue("id")); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "document deleted"})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	store, err := s.registry.Get(r.PathValue("index"))
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	chunks, err := store.ListChunks()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	if len(chunks) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Documents not found"})
		return
	}
	writeJSON(w, http.StatusOK, chunks)
}

func (s *Server) handleSearchDocuments(w http.ResponseWriter, r *http.Request) {
	store, err := s.registry.Get(r.PathValue("index"))
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	matches, err := retriever.KeywordSearch(store, r.PathValue("query"))
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}

	answer, err := s.ask.Ask(r.Context(), r.PathValue("index"), req.Question)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, answer)
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}

	title, text, ok := s.extractor.Extract(r.Context(), req.URL)
	if !ok {
		// Nothing extractable is a degraded success, not an error.
		writeJSON(w, http.StatusOK, []any{})
		return
	}

	scratch, err := s.newScratchDir()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	defer os.RemoveAll(scratch)

	name := scratchFileName(title)
	if err := os.WriteFile(filepath.Join(scratch, name), []byte(text), 0644); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	chunks, err := s.ingest.IngestFolder(scratch, r.PathValue("index"))
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, chunks)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"message": "There was an error uploading the file"})
		return
	}
	defer file.Close()

	scratch, err := s.newScratchDir()
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"message": "There was an error uploading the file"})
		return
	}
	defer os.RemoveAll(scratch)

	if err := saveUploadedFile(scratch, header.Filename, file); err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"message": "There was an error uploading the file"})
		return
	}

	chunks, err := s.ingest.IngestFolder(scratch, r.PathValue("index"))
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, chunks)
}

// newScratchDir creates a request-private upload directory. Callers remove
// it when the request finishes, success or not.
func (s *Server) newScratchDir() (string, error) {
	dir := filepath.Join(s.dataDir, "uploads", uuid.NewString())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

func saveUploadedFile(dir, filename string, src io.Reader) error {
	dst, err := os.Create(filepath.Join(dir, filepath.Base(filename)))
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9 _-]+`)

// scratchFileName turns a page title into a display-name-friendly file name.
func scratchFileName(title string) string {
	base := strings.TrimSpace(unsafeFileChars.ReplaceAllString(title, ""))
	if len(base) > 60 {
		base = strings.TrimSpace(base[:60])
	}
	if base == "" {
		base = "scan"
	}
	return base + ".txt"
}
