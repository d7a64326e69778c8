package server

import (
	"errors"
	"log"
	"strconv"

	"red-light/internal/db"

	"gorm.io/gorm"
)

// RestoreActiveSession reloads the active session and its roster after a
// restart. Liveness stamps are reset to now so the reaper does not mass
// eliminate everyone for downtime they did not cause.
func (s *Server) RestoreActiveSession() error {
	if s.db == nil {
		return errors.New("database not configured")
	}
	record, err := s.loadActiveSessionRecord()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Println("no active session to restore")
			return nil
		}
		return err
	}

	var rows []db.Participant
	if err := s.db.Where("session_id = ?", record.ID).Order("id asc").Find(&rows).Error; err != nil {
		return err
	}

	now := timeNowUTC()
	session := &Session{
		DBID:                 record.ID,
		IsActive:             record.IsActive,
		State:                record.State,
		RoundNo:              record.RoundNo,
		SensitivityLevel:     record.SensitivityLevel,
		BasePoints:           record.BasePoints,
		RestSeconds:          record.RestSeconds,
		RestEndsAt:           record.RestEndsAt,
		RoundAliveStart:      record.RoundAliveStart,
		RoundEliminatedCount: record.RoundEliminatedCount,
		CreatedAt:            record.CreatedAt,
	}
	if record.WinnerPlayerID != nil {
		session.WinnerPlayerID = *record.WinnerPlayerID
	}
	for _, row := range rows {
		p := Participant{
			DBID:             row.ID,
			PlayerID:         row.PlayerID,
			JoinedAt:         row.JoinedAt,
			Armed:            row.Armed,
			ArmedAt:          row.ArmedAt,
			LastSeenAt:       now,
			LastMotionScore:  row.LastMotionScore,
			EliminatedAt:     row.EliminatedAt,
			EliminatedRound:  row.EliminatedRound,
			EliminatedReason: row.EliminatedReason,
		}
		if row.EliminatedOrder != nil {
			p.EliminatedOrder = *row.EliminatedOrder
		}
		if info, err := s.resolver.Resolve("", row.PlayerID); err == nil {
			p.DisplayName = info.DisplayName
			p.PublicCode = info.PublicCode
		}
		if session.WinnerPlayerID == p.PlayerID {
			session.WinnerName = p.DisplayName
		}
		session.Participants = append(session.Participants, p)
	}

	s.store.Install(session)
	log.Printf("session restored session_id=%d state=%s participants=%d",
		record.ID, record.State, len(rows))
	return nil
}

// loadActiveSessionRecord follows the explicit active-session pointer and
// falls back to the is_active flag for databases written before the pointer
// existed.
func (s *Server) loadActiveSessionRecord() (db.Session, error) {
	var record db.Session
	var setting db.Setting
	err := s.db.Where("key = ?", db.SettingActiveSessionID).First(&setting).Error
	if err == nil {
		id, parseErr := strconv.ParseUint(setting.Value, 10, 64)
		if parseErr == nil && id > 0 {
			if err := s.db.First(&record, uint(id)).Error; err == nil && record.IsActive {
				return record, nil
			}
		}
	}
	err = s.db.Where("is_active = ?", true).Order("id desc").First(&record).Error
	return record, err
}
