package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"red-light/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(nil, config.Default())
}

func resetTestSession(t *testing.T, s *Server, level, base, rest int) {
	t.Helper()
	s.store.Reset(sessionConfig{
		SensitivityLevel: level,
		BasePoints:       base,
		RestSeconds:      rest,
	}, timeNowUTC())
}

// addArmedPlayers joins and arms players 1..n.
func addArmedPlayers(t *testing.T, s *Server, n int) {
	t.Helper()
	err := s.store.Update(func(g *Session) error {
		now := timeNowUTC()
		for i := 1; i <= n; i++ {
			info := PlayerInfo{
				ID:          uint(i),
				DisplayName: fmt.Sprintf("player-%d", i),
				PublicCode:  fmt.Sprintf("P%04d", i),
			}
			p := joinSession(g, info, now, &sideEffects{})
			at := now
			p.Armed = true
			p.ArmedAt = &at
		}
		return nil
	})
	if err != nil {
		t.Fatalf("add players: %v", err)
	}
}

func startTestRound(t *testing.T, s *Server) {
	t.Helper()
	err := s.store.Update(func(g *Session) error {
		return startRound(g, timeNowUTC(), &sideEffects{})
	})
	if err != nil {
		t.Fatalf("start round: %v", err)
	}
}

func sessionState(t *testing.T, s *Server) string {
	t.Helper()
	var state string
	err := s.store.View(func(g *Session) error {
		state = g.State
		return nil
	})
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	return state
}

func backdateLastSeen(t *testing.T, s *Server, playerID uint, age time.Duration) {
	t.Helper()
	err := s.store.Update(func(g *Session) error {
		p := g.findParticipant(playerID)
		if p == nil {
			return fmt.Errorf("player %d not found", playerID)
		}
		p.LastSeenAt = timeNowUTC().Add(-age)
		return nil
	})
	if err != nil {
		t.Fatalf("backdate: %v", err)
	}
}

// recordingLedger captures appends for assertions.
type recordingLedger struct {
	entries []award
}

func (l *recordingLedger) Append(playerID, sessionID uint, eventType string, pointsDelta int, note string) error {
	l.entries = append(l.entries, award{
		PlayerID:  playerID,
		SessionID: sessionID,
		EventType: eventType,
		Points:    pointsDelta,
		Note:      note,
	})
	return nil
}

func postJSON(t *testing.T, ts *httptest.Server, path string, body map[string]any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("post %s: %v", path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}
