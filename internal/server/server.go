// Package server exposes the analytics as a read-only JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/pable/footstats/internal/constants"
	"github.com/pable/footstats/internal/duel"
	"github.com/pable/footstats/internal/engine"
	"github.com/pable/footstats/internal/ledger"
	"github.com/pable/footstats/internal/model"
	"github.com/pable/footstats/internal/streak"
)

// Source supplies the stored collection. *storage.DB satisfies it.
type Source interface {
	ListMatches() ([]model.Match, error)
	GetMatch(id string) (*model.Match, error)
	ListGoals() ([]model.Goal, error)
	ListAchievements() ([]model.CustomAchievement, error)
	ProfileName() (string, error)
}

type Server struct {
	src    Source
	an     *engine.Analyzer
	log    zerolog.Logger
	viewer string
}

// New builds a server. A non-empty viewer overrides the stored profile name.
func New(src Source, an *engine.Analyzer, logger zerolog.Logger, viewer string) *Server {
	return &Server{src: src, an: an, log: logger, viewer: viewer}
}

// Handler returns the routed API wrapped in CORS and request logging.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(RequestID(s.log))

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", s.health).Methods("GET")
	api.HandleFunc("/matches", s.matches).Methods("GET")
	api.HandleFunc("/matches/{id}", s.match).Methods("GET")
	api.HandleFunc("/records", s.records).Methods("GET")
	api.HandleFunc("/streaks", s.streaks).Methods("GET")
	api.HandleFunc("/morale", s.morale).Methods("GET")
	api.HandleFunc("/seasons", s.seasons).Methods("GET")
	api.HandleFunc("/seasons/{year:[0-9]{4}}", s.season).Methods("GET")
	api.HandleFunc("/duels", s.duels).Methods("GET")
	api.HandleFunc("/milestones", s.milestones).Methods("GET")
	api.HandleFunc("/goals", s.goals).Methods("GET")
	api.HandleFunc("/achievements", s.achievements).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(router)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  constants.ReadTimeout,
		WriteTimeout: constants.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info().Msg("server stopped gracefully")
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg(msg)
	}
	body := map[string]string{"error": msg}
	if id := GetRequestID(r.Context()); id != "" {
		body["requestId"] = id
	}
	writeJSON(w, status, body)
}

// filter reads the year and player query parameters.
func filter(r *http.Request) (engine.Filter, error) {
	f := engine.Filter{Player: r.URL.Query().Get("player")}
	if y := r.URL.Query().Get("year"); y != "" && y != "all" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return f, errors.New("year must be a number or \"all\"")
		}
		f.Year = year
	}
	return f, nil
}

func (s *Server) load(w http.ResponseWriter, r *http.Request) ([]model.Match, engine.Filter, bool) {
	f, err := filter(r)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err.Error(), nil)
		return nil, f, false
	}
	ms, err := s.src.ListMatches()
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "load matches", err)
		return nil, f, false
	}
	return ms, f, true
}

func (s *Server) viewerName() string {
	if s.viewer != "" {
		return s.viewer
	}
	name, err := s.src.ProfileName()
	if err != nil {
		s.log.Warn().Err(err).Msg("read profile name")
	}
	return name
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) matches(w http.ResponseWriter, r *http.Request) {
	ms, f, ok := s.load(w, r)
	if !ok {
		return
	}
	out := ledger.FilterByYear(ms, f.Year)
	if f.Player != "" {
		out = ledger.FilterByPlayerInvolved(out, f.Player)
	}
	out = ledger.SortedDescending(out)
	if out == nil {
		out = []model.Match{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) match(w http.ResponseWriter, r *http.Request) {
	m, err := s.src.GetMatch(mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "load match", err)
		return
	}
	if m == nil {
		s.fail(w, r, http.StatusNotFound, "match not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) records(w http.ResponseWriter, r *http.Request) {
	ms, f, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.an.Records(r.Context(), ms, f))
}

// streakView names each condition instead of using its numeric value.
type streakView struct {
	Condition string `json:"condition"`
	Current   int    `json:"current"`
	Active    bool   `json:"active"`
	Positive  bool   `json:"positive"`
}

func (s *Server) streaks(w http.ResponseWriter, r *http.Request) {
	ms, f, ok := s.load(w, r)
	if !ok {
		return
	}
	cur := s.an.Streaks(r.Context(), ms, f)
	out := make([]streakView, 0, len(streak.Conditions))
	for _, c := range streak.Conditions {
		out = append(out, streakView{Condition: c.String(), Current: cur[c], Active: cur.Active(c), Positive: c.Positive()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) morale(w http.ResponseWriter, r *http.Request) {
	ms, f, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.an.Morale(r.Context(), ms, f))
}

// seasons lists closed seasons; ?all=true also rates the one in progress.
func (s *Server) seasons(w http.ResponseWriter, r *http.Request) {
	ms, _, ok := s.load(w, r)
	if !ok {
		return
	}
	all, err := s.an.Seasons(r.Context(), ms)
	if err != nil {
		s.fail(w, r, http.StatusServiceUnavailable, "rate seasons", err)
		return
	}
	includeOpen := r.URL.Query().Get("all") == "true"
	out := make([]model.SeasonRating, 0, len(all))
	for _, rt := range all {
		if includeOpen || !rt.InProgress {
			out = append(out, rt)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) season(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(mux.Vars(r)["year"])
	ms, _, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.an.Season(r.Context(), ms, year))
}

func (s *Server) duels(w http.ResponseWriter, r *http.Request) {
	ms, f, ok := s.load(w, r)
	if !ok {
		return
	}
	res := s.an.Duels(r.Context(), ms, f, s.viewerName())
	if name := r.URL.Query().Get("with"); name != "" {
		side := model.Side(r.URL.Query().Get("side"))
		if side != model.SideOpponent {
			side = model.SideTeammate
		}
		st, found := duel.Find(res.Side(side), name)
		if !found {
			s.fail(w, r, http.StatusNotFound, "co-player not found", nil)
			return
		}
		writeJSON(w, http.StatusOK, st)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) targets(w http.ResponseWriter, r *http.Request) ([]model.Match, []model.Goal, []model.CustomAchievement, bool) {
	ms, _, ok := s.load(w, r)
	if !ok {
		return nil, nil, nil, false
	}
	goals, err := s.src.ListGoals()
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "load goals", err)
		return nil, nil, nil, false
	}
	achievements, err := s.src.ListAchievements()
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "load achievements", err)
		return nil, nil, nil, false
	}
	return ms, goals, achievements, true
}

func (s *Server) milestones(w http.ResponseWriter, r *http.Request) {
	ms, goals, achievements, ok := s.targets(w, r)
	if !ok {
		return
	}
	out := s.an.Milestones(r.Context(), ms, goals, achievements)
	if out == nil {
		out = []model.MilestoneYear{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) goals(w http.ResponseWriter, r *http.Request) {
	ms, goals, _, ok := s.targets(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.an.GoalProgress(r.Context(), ms, goals))
}

func (s *Server) achievements(w http.ResponseWriter, r *http.Request) {
	ms, _, achievements, ok := s.targets(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.an.AchievementProgress(r.Context(), ms, achievements))
}
