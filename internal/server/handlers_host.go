package server

import (
	"log"
	"net/http"
	"time"
)

type resetRequest struct {
	SensitivityLevel int `json:"sensitivity_level"`
	BasePoints       int `json:"base_points"`
	RestSeconds      int `json:"rest_seconds"`
}

func (s *Server) handleHostState(w http.ResponseWriter, r *http.Request) {
	fx := &sideEffects{}
	var payload map[string]any
	err := s.store.Update(func(g *Session) error {
		s.reapOffline(g, timeNowUTC(), fx)
		payload = hostState(g)
		return nil
	})
	s.commit(fx)
	if err != nil {
		writeOK(w, map[string]any{"session": nil})
		return
	}
	writeOK(w, payload)
}

func (s *Server) handleStartRound(w http.ResponseWriter, r *http.Request) {
	s.runHostCommand(w, "start_round", startRound)
}

func (s *Server) handleEndRound(w http.ResponseWriter, r *http.Request) {
	s.runHostCommand(w, "end_round", hostEndRound)
}

func (s *Server) handleFinishGame(w http.ResponseWriter, r *http.Request) {
	s.runHostCommand(w, "finish_game", finishGame)
}

func (s *Server) runHostCommand(w http.ResponseWriter, name string, command func(*Session, time.Time, *sideEffects) error) {
	fx := &sideEffects{}
	var payload map[string]any
	// Host commands deliberately skip the offline sweep: a sweep here could
	// auto-finish the session out from under the command it was asked to run.
	err := s.store.Update(func(g *Session) error {
		if err := command(g, timeNowUTC(), fx); err != nil {
			return err
		}
		payload = hostState(g)
		return nil
	})
	s.commit(fx)
	if err != nil {
		writeGameError(w, err)
		return
	}
	log.Printf("host command applied command=%s", name)
	writeOK(w, payload)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cfg := clampSessionConfig(req, s.cfg)

	session := s.store.Reset(cfg, timeNowUTC())
	if err := s.persistNewSession(session); err != nil {
		log.Printf("session persist failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to reset session")
		return
	}
	log.Printf("session reset sensitivity=%d base_points=%d rest_seconds=%d",
		cfg.SensitivityLevel, cfg.BasePoints, cfg.RestSeconds)

	fx := &sideEffects{changed: true}
	fx.record("session_reset", 0, EventPayload{
		SensitivityLevel: cfg.SensitivityLevel,
		BasePoints:       cfg.BasePoints,
		RestSeconds:      cfg.RestSeconds,
	})
	var payload map[string]any
	_ = s.store.View(func(g *Session) error {
		fx.snapshotSession(g)
		payload = hostState(g)
		return nil
	})
	s.commit(fx)
	writeOK(w, payload)
}
