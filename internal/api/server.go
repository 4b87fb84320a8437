// Package api provides the HTTP API server for MoodTracker.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/moodtracker/moodtracker/internal/core"
	"github.com/moodtracker/moodtracker/internal/insights"
	"github.com/moodtracker/moodtracker/internal/logging"
	"github.com/moodtracker/moodtracker/internal/storage"
	"github.com/moodtracker/moodtracker/internal/validation"
)

// Server is the HTTP API server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	wsHub      *WebSocketHub

	moodStore *storage.MoodStore
	service   *insights.Service

	log *logging.Logger
}

// Config for the server
type Config struct {
	Host      string
	Port      int
	MoodStore *storage.MoodStore
	Service   *insights.Service
}

// New creates a new API server
func New(cfg Config) *Server {
	s := &Server{
		moodStore: cfg.MoodStore,
		service:   cfg.Service,
		wsHub:     NewWebSocketHub(),
		log:       logging.WithField("component", "api"),
	}

	s.setupRouter()
	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: s.router,
	}

	return s
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(90 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Entries
		r.Post("/entries", s.handleCreateEntry)
		r.Get("/entries", s.handleListEntries)
		r.Get("/entries/{date}", s.handleGetEntryByDate)

		// Stats
		r.Get("/stats", s.handleGetStats)

		// Vocabulary for UI pickers
		r.Get("/moods", s.handleGetMoodOptions)

		// Insights
		r.Post("/insights/generate", s.handleGenerateInsights)
		r.Get("/insights", s.handleListInsights)
		r.Get("/insights/latest", s.handleLatestInsight)
		r.Post("/insights/{insightID}/read", s.handleMarkInsightRead)

		// Settings
		r.Put("/settings/api-key", s.handleSaveAPIKey)
		r.Get("/settings/api-key", s.handleAPIKeyStatus)
	})

	// WebSocket events
	r.Get("/ws", s.wsHub.handleWS)

	s.router = r
}

// Start runs the server until it is stopped
func (s *Server) Start() error {
	go s.wsHub.Run()

	s.log.Info("API server starting on http://%s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// --- Response helpers ---

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

// --- Handlers ---

type createEntryRequest struct {
	Emoji     string   `json:"emoji"`
	MoodType  string   `json:"mood_type"`
	Intensity int      `json:"intensity"`
	Note      string   `json:"note"`
	Tags      []string `json:"tags"`
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res := validation.ValidateMoodEntry(validation.MoodEntryInput{
		Emoji:     req.Emoji,
		MoodType:  req.MoodType,
		Intensity: req.Intensity,
		Note:      req.Note,
		Tags:      req.Tags,
	})
	if !res.Valid {
		s.respondJSON(w, http.StatusBadRequest, res)
		return
	}

	entry := &core.MoodEntry{
		Emoji:     req.Emoji,
		MoodType:  req.MoodType,
		Intensity: req.Intensity,
		Note:      validation.SanitizeNote(req.Note),
		Tags:      req.Tags,
	}
	if err := s.moodStore.Create(entry); err != nil {
		s.log.Error("saving mood entry: %v", err)
		s.respondError(w, http.StatusInternalServerError, validation.StoreErrorMessage(err))
		return
	}

	s.wsHub.Broadcast(EventEntrySaved, entry)
	s.respondJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	entries, err := s.moodStore.List(limit)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, validation.StoreErrorMessage(err))
		return
	}
	if entries == nil {
		entries = []*core.MoodEntry{}
	}
	s.respondJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGetEntryByDate(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, err := time.Parse(storage.DateFormat, date); err != nil {
		s.respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	entry, err := s.moodStore.GetByDate(date)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, validation.StoreErrorMessage(err))
		return
	}
	if entry == nil {
		s.respondError(w, http.StatusNotFound, "no entry for that date")
		return
	}
	s.respondJSON(w, http.StatusOK, entry)
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Stats()
	if err != nil {
		// Degrade to empty-state stats with an error flag
		s.log.Error("computing stats: %v", err)
		s.respondJSON(w, http.StatusOK, map[string]interface{}{
			"stats": core.MoodStats{MostCommonMood: "😊"},
			"error": validation.StoreErrorMessage(err),
		})
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"stats": stats})
}

func (s *Server) handleGetMoodOptions(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"moods": core.MoodOptions,
		"tags":  core.ActivityTags,
	})
}

func (s *Server) handleGenerateInsights(w http.ResponseWriter, r *http.Request) {
	generated := s.service.GenerateInsights(r.Context())
	s.wsHub.Broadcast(EventInsightGenerated, generated)
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"insights": generated})
}

func (s *Server) handleListInsights(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	stored, err := s.service.RecentInsights(limit)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, validation.StoreErrorMessage(err))
		return
	}
	if stored == nil {
		stored = []*core.Insight{}
	}
	s.respondJSON(w, http.StatusOK, stored)
}

func (s *Server) handleLatestInsight(w http.ResponseWriter, r *http.Request) {
	text, err := s.service.LatestInsightText()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, validation.StoreErrorMessage(err))
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"text": text})
}

func (s *Server) handleMarkInsightRead(w http.ResponseWriter, r *http.Request) {
	id := core.InsightID(chi.URLParam(r, "insightID"))
	if err := s.service.MarkInsightRead(id); err != nil {
		if errors.Is(err, core.ErrInsightNotFound) {
			s.respondError(w, http.StatusNotFound, "insight not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, validation.StoreErrorMessage(err))
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type saveAPIKeyRequest struct {
	APIKey string `json:"api_key"`
}

func (s *Server) handleSaveAPIKey(w http.ResponseWriter, r *http.Request) {
	var req saveAPIKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.service.SaveAPIKey(req.APIKey); err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.respondError(w, http.StatusInternalServerError, validation.StoreErrorMessage(err))
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleAPIKeyStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]bool{"configured": s.service.HasAPIKey()})
}
