// Package server exposes the medibot HTTP API and static pages.
package server

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/pathakanu/medibot/internal/config"
	"github.com/pathakanu/medibot/internal/service"
)

// TextGenerator produces model text for an assembled prompt.
type TextGenerator interface {
	Configured() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

// ImageDescriber produces a natural-language description of image bytes.
type ImageDescriber interface {
	Configured() bool
	DescribeImage(ctx context.Context, data []byte, mimeType string) (string, error)
}

// Server wires handlers to the domain services and gateways.
type Server struct {
	cfg       *config.Config
	logger    *log.Logger
	reminders *service.Reminders
	notes     *service.Notes
	water     *service.Water
	generator TextGenerator
	vision    ImageDescriber
}

// New creates a fully configured Server.
func New(cfg *config.Config, logger *log.Logger, reminders *service.Reminders, notes *service.Notes, water *service.Water, generator TextGenerator, vision ImageDescriber) *Server {
	return &Server{
		cfg:       cfg,
		logger:    logger,
		reminders: reminders,
		notes:     notes,
		water:     water,
		generator: generator,
		vision:    vision,
	}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/api/chat", s.handleChat).Methods(http.MethodPost)
	r.HandleFunc("/api/summarize", s.handleSummarize).Methods(http.MethodPost)
	r.HandleFunc("/api/upload_image", s.handleUploadImage).Methods(http.MethodPost)
	r.HandleFunc("/api/analyze_local", s.handleAnalyzeLocal).Methods(http.MethodPost)

	r.HandleFunc("/api/reminder", s.handleAddReminder).Methods(http.MethodPost)
	r.HandleFunc("/api/reminders", s.handleListReminders).Methods(http.MethodGet)
	r.HandleFunc("/api/reminder/{id}/complete", s.handleCompleteReminder).Methods(http.MethodPost)
	r.HandleFunc("/api/reminders/completed", s.handleDeleteCompleted).Methods(http.MethodDelete)

	r.HandleFunc("/api/notes", s.handleAddNote).Methods(http.MethodPost)
	r.HandleFunc("/api/notes", s.handleListNotes).Methods(http.MethodGet)

	r.HandleFunc("/api/water", s.handleGetWater).Methods(http.MethodGet)
	r.HandleFunc("/api/water", s.handlePostWater).Methods(http.MethodPost)

	r.HandleFunc("/api/daily_summary", s.handleDailySummary).Methods(http.MethodGet)

	r.HandleFunc("/.well-known/assetlinks.json", s.handleAssetLinks).Methods(http.MethodGet)
	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(s.cfg.StaticDir))))
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.cfg.StaticDir, "index.html"))
}

func (s *Server) handleAssetLinks(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(s.cfg.StaticDir, ".well-known", "assetlinks.json")
	if _, err := os.Stat(path); err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, path)
}

// owner resolves the partition key for the request: an explicit X-User-ID
// header when present, otherwise the caller's address.
func owner(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
