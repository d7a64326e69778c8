package db

import (
	"time"

	"gorm.io/datatypes"
)

type Player struct {
	ID          uint      `gorm:"primaryKey"`
	PublicCode  string    `gorm:"size:16;uniqueIndex;not null"`
	DisplayName string    `gorm:"size:64;not null"`
	Token       string    `gorm:"size:64;uniqueIndex;not null"`
	IsActive    bool      `gorm:"not null;default:true"`
	LastSeenAt  *time.Time
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

type Session struct {
	ID                   uint      `gorm:"primaryKey"`
	IsActive             bool      `gorm:"not null;default:false"`
	State                string    `gorm:"size:16;not null"`
	RoundNo              int       `gorm:"not null;default:0"`
	SensitivityLevel     int       `gorm:"not null"`
	BasePoints           int       `gorm:"not null"`
	RestSeconds          int       `gorm:"not null"`
	RestEndsAt           *time.Time
	RoundAliveStart      int       `gorm:"not null;default:0"`
	RoundEliminatedCount int       `gorm:"not null;default:0"`
	WinnerPlayerID       *uint     `gorm:"index"`
	CreatedAt            time.Time `gorm:"not null"`
	UpdatedAt            time.Time `gorm:"not null"`
	Participants         []Participant
	Events               []Event
}

// EliminatedOrder carries a unique index per session as a safety net for the
// gapless-rank invariant enforced by the store's lock discipline.
type Participant struct {
	ID               uint      `gorm:"primaryKey"`
	SessionID        uint      `gorm:"index;not null;uniqueIndex:idx_participants_session_player;uniqueIndex:idx_participants_session_order"`
	PlayerID         uint      `gorm:"index;not null;uniqueIndex:idx_participants_session_player"`
	JoinedAt         time.Time `gorm:"not null"`
	Armed            bool      `gorm:"not null;default:false"`
	ArmedAt          *time.Time
	LastSeenAt       time.Time `gorm:"not null"`
	LastMotionScore  float64   `gorm:"not null;default:0"`
	EliminatedAt     *time.Time
	EliminatedOrder  *int   `gorm:"uniqueIndex:idx_participants_session_order"`
	EliminatedRound  int    `gorm:"not null;default:0"`
	EliminatedReason string `gorm:"size:16"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

type ScoreEvent struct {
	ID          uint      `gorm:"primaryKey"`
	PlayerID    uint      `gorm:"index;not null"`
	SessionID   *uint     `gorm:"index"`
	EventType   string    `gorm:"size:32;not null"`
	PointsDelta int       `gorm:"not null"`
	Note        string    `gorm:"size:255"`
	CreatedAt   time.Time `gorm:"not null"`
}

type Event struct {
	ID        uint           `gorm:"primaryKey"`
	SessionID uint           `gorm:"index;not null"`
	PlayerID  *uint          `gorm:"index"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}

// Setting is a key/value row; the active_session_id key reifies the
// one-active-session invariant as an explicit pointer.
type Setting struct {
	Key       string    `gorm:"primaryKey;size:64"`
	Value     string    `gorm:"size:255;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

const SettingActiveSessionID = "active_session_id"
