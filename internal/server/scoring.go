package server

import (
	"fmt"
	"log"
	"time"

	"red-light/internal/db"

	"gorm.io/gorm"
)

// Ledger is the external scoring ledger. Appends are fire-and-forget from the
// engine's perspective; a failed append is logged, never propagated.
type Ledger interface {
	Append(playerID, sessionID uint, eventType string, pointsDelta int, note string) error
}

// distributePoints runs the full position-based distribution for a host
// finish. The winner is position 1; eliminated participants rank by
// elimination order descending, so whoever survived longest finishes highest.
// Points are base_points * (total - position): the winner earns the most, the
// first one out earns zero.
func distributePoints(g *Session, winner *Participant, fx *sideEffects) {
	total := g.eliminatedCount() + 1
	fx.award(award{
		PlayerID:  winner.PlayerID,
		SessionID: g.DBID,
		EventType: "REDLIGHT_WIN",
		Points:    g.BasePoints * (total - 1),
		Note:      fmt.Sprintf("red light: position 1 of %d", total),
	})
	for i := range g.Participants {
		p := &g.Participants[i]
		if !p.eliminated() {
			continue
		}
		position := total - (p.EliminatedOrder - 1)
		fx.award(award{
			PlayerID:  p.PlayerID,
			SessionID: g.DBID,
			EventType: "REDLIGHT_POSITION",
			Points:    g.BasePoints * (total - position),
			Note:      fmt.Sprintf("red light: position %d of %d, eliminated round %d", position, total, p.EliminatedRound),
		})
	}
}

type dbLedger struct {
	conn *gorm.DB
}

// NewDBLedger appends score events to the shared score_events table.
func NewDBLedger(conn *gorm.DB) Ledger {
	return &dbLedger{conn: conn}
}

func (l *dbLedger) Append(playerID, sessionID uint, eventType string, pointsDelta int, note string) error {
	record := db.ScoreEvent{
		PlayerID:    playerID,
		EventType:   eventType,
		PointsDelta: pointsDelta,
		Note:        note,
		CreatedAt:   time.Now().UTC(),
	}
	if sessionID != 0 {
		record.SessionID = &sessionID
	}
	return l.conn.Create(&record).Error
}

type nopLedger struct{}

func (nopLedger) Append(uint, uint, string, int, string) error { return nil }

func (s *Server) appendAwards(awards []award) {
	for _, a := range awards {
		if err := s.ledger.Append(a.PlayerID, a.SessionID, a.EventType, a.Points, a.Note); err != nil {
			log.Printf("ledger append failed player_id=%d points=%d: %v", a.PlayerID, a.Points, err)
		}
	}
}
