package server

import (
	"errors"
	"log"
	"net/http"
)

type joinRequest struct {
	PlayerToken string `json:"player_token"`
	PlayerID    uint   `json:"player_id"`
}

type heartbeatRequest struct {
	PlayerToken string `json:"player_token"`
	PlayerID    uint   `json:"player_id"`
	SensorOK    bool   `json:"sensor_ok"`
	ClientTS    int64  `json:"client_ts"`
}

type motionRequest struct {
	PlayerToken string  `json:"player_token"`
	PlayerID    uint    `json:"player_id"`
	MotionScore float64 `json:"motion_score"`
	ClientTS    int64   `json:"client_ts"`
}

type statusRequest struct {
	PlayerToken string `json:"player_token"`
	PlayerID    uint   `json:"player_id"`
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	info, err := s.resolver.Resolve(req.PlayerToken, req.PlayerID)
	if err != nil {
		writeGameError(w, err)
		return
	}

	fx := &sideEffects{}
	var armed, eliminated bool
	err = s.store.Update(func(g *Session) error {
		now := timeNowUTC()
		s.reapOffline(g, now, fx)
		p := joinSession(g, info, now, fx)
		armed = p.Armed
		eliminated = p.eliminated()
		return nil
	})
	s.commit(fx)
	if err != nil {
		writeGameError(w, err)
		return
	}
	log.Printf("player joined player_id=%d code=%s", info.ID, info.PublicCode)
	writeOK(w, map[string]any{
		"armed":      armed,
		"eliminated": eliminated,
	})
}

func (s *Server) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	var req heartbeatRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	info, err := s.resolver.Resolve(req.PlayerToken, req.PlayerID)
	if err != nil {
		writeGameError(w, err)
		return
	}

	fx := &sideEffects{}
	var res heartbeatResult
	err = s.store.Update(func(g *Session) error {
		now := timeNowUTC()
		s.reapOffline(g, now, fx)
		res = heartbeat(g, info.ID, req.SensorOK, now, fx)
		return nil
	})
	s.commit(fx)
	if errors.Is(err, errNoActiveSession) {
		// A heartbeat before the host opened a session is reported, not failed.
		writeOK(w, map[string]any{"ignored": true, "reason": "no active session"})
		return
	}
	if err != nil {
		writeGameError(w, err)
		return
	}
	payload := map[string]any{"armed": res.Armed}
	if res.Ignored != "" {
		payload["ignored"] = true
		payload["reason"] = res.Ignored
	}
	writeOK(w, payload)
}

func (s *Server) handleMotion(w http.ResponseWriter, r *http.Request) {
	var req motionRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.MotionScore < 0 {
		writeGameError(w, validationError("motion_score must not be negative"))
		return
	}
	info, err := s.resolver.Resolve(req.PlayerToken, req.PlayerID)
	if err != nil {
		writeGameError(w, err)
		return
	}

	fx := &sideEffects{}
	var res motionResult
	err = s.store.Update(func(g *Session) error {
		now := timeNowUTC()
		s.reapOffline(g, now, fx)
		var opErr error
		res, opErr = submitMotion(g, info.ID, req.MotionScore, now, fx)
		return opErr
	})
	s.commit(fx)
	if errors.Is(err, errNoActiveSession) {
		writeOK(w, map[string]any{"ignored": true, "reason": "no active session"})
		return
	}
	if err != nil {
		writeGameError(w, err)
		return
	}
	payload := map[string]any{
		"armed":      res.Armed,
		"eliminated": res.Eliminated,
	}
	if res.Eliminated {
		payload["reason"] = res.ElimReason
	}
	if res.Ignored {
		payload["ignored"] = true
		payload["reason"] = res.Reason
	}
	writeOK(w, payload)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	info, err := s.resolver.Resolve(req.PlayerToken, req.PlayerID)
	if err != nil {
		writeGameError(w, err)
		return
	}

	fx := &sideEffects{}
	var payload map[string]any
	err = s.store.Update(func(g *Session) error {
		s.reapOffline(g, timeNowUTC(), fx)
		payload = playerStatusPayload(g, g.findParticipant(info.ID))
		return nil
	})
	s.commit(fx)
	if errors.Is(err, errNoActiveSession) {
		writeOK(w, map[string]any{
			"session": nil,
			"me":      nil,
			"message": "waiting for session",
		})
		return
	}
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeOK(w, payload)
}
