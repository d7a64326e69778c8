package server

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"red-light/internal/db"

	"github.com/jackc/pgconn"
	"gorm.io/datatypes"
)

// commit applies the side effects of one locked mutation: write-through
// persistence, ledger appends, and the host broadcast. Failures here are
// logged, never surfaced to the hot path; the in-memory aggregate stays
// authoritative.
func (s *Server) commit(fx *sideEffects) {
	if fx == nil {
		return
	}
	if s.db != nil {
		if fx.session != nil && fx.session.DBID != 0 {
			s.persistSessionState(fx.session)
		}
		for i := range fx.participants {
			s.persistParticipantChange(fx.participants[i])
		}
		for _, ev := range fx.events {
			s.persistEvent(ev)
		}
	}
	s.appendAwards(fx.awards)
	if fx.changed {
		s.broadcastHostState()
	}
}

func (s *Server) persistSessionState(copy *Session) {
	updates := map[string]any{
		"is_active":              copy.IsActive,
		"state":                  copy.State,
		"round_no":               copy.RoundNo,
		"sensitivity_level":      copy.SensitivityLevel,
		"base_points":            copy.BasePoints,
		"rest_seconds":           copy.RestSeconds,
		"rest_ends_at":           copy.RestEndsAt,
		"round_alive_start":      copy.RoundAliveStart,
		"round_eliminated_count": copy.RoundEliminatedCount,
	}
	if copy.WinnerPlayerID != 0 {
		updates["winner_player_id"] = copy.WinnerPlayerID
	}
	if err := s.db.Model(&db.Session{}).Where("id = ?", copy.DBID).Updates(updates).Error; err != nil {
		log.Printf("session persist failed session_id=%d: %v", copy.DBID, err)
	}
}

func (s *Server) persistParticipantChange(p Participant) {
	sessionDBID := s.currentSessionDBID()
	if sessionDBID == 0 {
		return
	}
	if p.DBID == 0 {
		record := db.Participant{
			SessionID:  sessionDBID,
			PlayerID:   p.PlayerID,
			JoinedAt:   p.JoinedAt,
			Armed:      p.Armed,
			ArmedAt:    p.ArmedAt,
			LastSeenAt: p.LastSeenAt,
		}
		err := s.db.Create(&record).Error
		switch {
		case err == nil:
			p.DBID = record.ID
		case isUniqueViolation(err):
			var existing db.Participant
			if lookupErr := s.db.Where("session_id = ? AND player_id = ?", sessionDBID, p.PlayerID).
				First(&existing).Error; lookupErr != nil {
				log.Printf("participant lookup failed player_id=%d: %v", p.PlayerID, lookupErr)
				return
			}
			p.DBID = existing.ID
		default:
			log.Printf("participant persist failed player_id=%d: %v", p.PlayerID, err)
			return
		}
		s.backfillParticipantDBID(p.PlayerID, p.DBID)
	}

	updates := map[string]any{
		"armed":             p.Armed,
		"armed_at":          p.ArmedAt,
		"last_seen_at":      p.LastSeenAt,
		"last_motion_score": p.LastMotionScore,
		"eliminated_at":     p.EliminatedAt,
		"eliminated_round":  p.EliminatedRound,
		"eliminated_reason": p.EliminatedReason,
	}
	if p.EliminatedAt != nil {
		updates["eliminated_order"] = p.EliminatedOrder
	} else {
		updates["eliminated_order"] = nil
	}
	if err := s.db.Model(&db.Participant{}).Where("id = ?", p.DBID).Updates(updates).Error; err != nil {
		log.Printf("participant persist failed player_id=%d: %v", p.PlayerID, err)
	}
}

func (s *Server) persistEvent(ev eventRecord) {
	sessionDBID := s.currentSessionDBID()
	if sessionDBID == 0 {
		return
	}
	data, err := json.Marshal(ev.Payload)
	if err != nil {
		log.Printf("event payload marshal failed type=%s: %v", ev.Type, err)
		return
	}
	record := db.Event{
		SessionID: sessionDBID,
		Type:      ev.Type,
		Payload:   datatypes.JSON(data),
		CreatedAt: time.Now().UTC(),
	}
	if ev.PlayerID != 0 {
		playerID := ev.PlayerID
		record.PlayerID = &playerID
	}
	if err := s.db.Create(&record).Error; err != nil {
		log.Printf("event persist failed type=%s: %v", ev.Type, err)
	}
}

// persistNewSession creates the row for a freshly reset session, deactivates
// any predecessors, and moves the active-session pointer.
func (s *Server) persistNewSession(session *Session) error {
	if s.db == nil {
		return nil
	}
	record := db.Session{
		IsActive:         true,
		State:            session.State,
		SensitivityLevel: session.SensitivityLevel,
		BasePoints:       session.BasePoints,
		RestSeconds:      session.RestSeconds,
		CreatedAt:        session.CreatedAt,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return err
	}
	if err := s.db.Model(&db.Session{}).
		Where("is_active = ? AND id <> ?", true, record.ID).
		Update("is_active", false).Error; err != nil {
		return err
	}
	if err := s.setActiveSessionPointer(record.ID); err != nil {
		return err
	}
	return s.store.Update(func(g *Session) error {
		g.DBID = record.ID
		return nil
	})
}

func (s *Server) setActiveSessionPointer(sessionDBID uint) error {
	setting := db.Setting{
		Key:       db.SettingActiveSessionID,
		Value:     itoa(sessionDBID),
		UpdatedAt: time.Now().UTC(),
	}
	return s.db.Save(&setting).Error
}

func (s *Server) currentSessionDBID() uint {
	var dbID uint
	_ = s.store.View(func(g *Session) error {
		dbID = g.DBID
		return nil
	})
	return dbID
}

func (s *Server) backfillParticipantDBID(playerID, dbID uint) {
	_ = s.store.Update(func(g *Session) error {
		if p := g.findParticipant(playerID); p != nil && p.DBID == 0 {
			p.DBID = dbID
		}
		return nil
	})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
