package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shashikiranbs2006/yoru-chatbot/internal/catalog"
	"github.com/shashikiranbs2006/yoru-chatbot/internal/chat"
	"github.com/shashikiranbs2006/yoru-chatbot/internal/embeddings"
	"github.com/shashikiranbs2006/yoru-chatbot/internal/vectordb"
)

// Config holds server configuration.
type Config struct {
	Port     int
	FilesDir string // directory of downloadable notes files, served at /files
	AllowAll bool   // allow all CORS origins (dev mode)
}

// ChatService answers one question per call with no cross-request state.
type ChatService interface {
	Respond(ctx context.Context, question string) *chat.Response
}

// Server is the HTTP front of the notes assistant.
type Server struct {
	cfg        Config
	chat       ChatService
	embedder   embeddings.Embedder
	store      vectordb.VectorStore
	catalog    *catalog.Catalog
	router     chi.Router
	httpServer *http.Server
}

// New creates a server with all dependencies.
func New(cfg Config, chatService ChatService, embedder embeddings.Embedder, store vectordb.VectorStore, cat *catalog.Catalog) *Server {
	s := &Server{
		cfg:      cfg,
		chat:     chatService,
		embedder: embedder,
		store:    store,
		catalog:  cat,
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/chat", s.handleChat)
	r.Get("/query", s.handleQuery)
	r.Get("/getfile", s.handleGetFile)
	r.Get("/library", s.handleLibrary)
	r.Get("/ws", s.handleWebSocket)

	if s.cfg.FilesDir != "" {
		fileServer := http.StripPrefix("/files/", http.FileServer(http.Dir(s.cfg.FilesDir)))
		r.Get("/files/*", fileServer.ServeHTTP)
	}

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("yoru server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
