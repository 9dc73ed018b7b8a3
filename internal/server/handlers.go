package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

// chatRequest is the POST /chat body.
type chatRequest struct {
	Question string `json:"question"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleChat runs a question through the full chat pipeline.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Question missing"})
		return
	}

	resp := s.chat.Respond(r.Context(), req.Question)
	writeJSON(w, http.StatusOK, resp)
}

// queryResponse is the GET /query result: the file backing the single
// nearest chunk to the query text.
type queryResponse struct {
	Success bool   `json:"success"`
	File    string `json:"file,omitempty"`
	Error   string `json:"error,omitempty"`
}

// handleQuery embeds q and returns the source file of the top match. This
// is the raw retrieval probe the chat pipeline builds on.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeJSON(w, http.StatusBadRequest, queryResponse{Success: false, Error: "missing q parameter"})
		return
	}

	vectors, err := s.embedder.Embed(r.Context(), []string{q})
	if err != nil || len(vectors) == 0 {
		log.Printf("server: query embedding failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, queryResponse{Success: false, Error: "embedding failed"})
		return
	}

	results, err := s.store.QueryEmbedding(r.Context(), vectors[0], 1)
	if err != nil {
		log.Printf("server: query search failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, queryResponse{Success: false, Error: "search failed"})
		return
	}
	if len(results) == 0 {
		writeJSON(w, http.StatusOK, queryResponse{Success: false, Error: "no results"})
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{Success: true, File: results[0].Metadata.Source})
}

// getFileResponse is the GET /getfile result.
type getFileResponse struct {
	FileURL string `json:"file_url"`
}

// handleGetFile looks up a notes file by its exact base name.
func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing name parameter"})
		return
	}

	_, link, ok := s.catalog.FindByBasename(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "file not found"})
		return
	}

	writeJSON(w, http.StatusOK, getFileResponse{FileURL: link})
}

// handleLibrary returns the catalog rendered as a nested folder tree.
func (s *Server) handleLibrary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Tree())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
