package server

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"red-light/internal/db"

	"gorm.io/gorm"
)

// PlayerInfo is the resolved identity of a caller. Identity issuance lives
// outside this service; the engine only needs a stable id and display fields.
type PlayerInfo struct {
	ID          uint
	DisplayName string
	PublicCode  string
}

// PlayerResolver maps a caller credential (device token and/or claimed id)
// to a player.
type PlayerResolver interface {
	Resolve(token string, playerID uint) (PlayerInfo, error)
}

var errPlayerRequired = &gameError{Kind: kindValidation, Code: codePlayerRequired, Message: "player_token or player_id is required"}

type dbResolver struct {
	conn *gorm.DB
}

// NewDBResolver resolves identities against the shared players table.
func NewDBResolver(conn *gorm.DB) PlayerResolver {
	return &dbResolver{conn: conn}
}

func (r *dbResolver) Resolve(token string, playerID uint) (PlayerInfo, error) {
	token = strings.TrimSpace(token)
	if token == "" && playerID == 0 {
		return PlayerInfo{}, errPlayerRequired
	}
	var record db.Player
	query := r.conn.Where("is_active = ?", true)
	if token != "" {
		query = query.Where("token = ?", token)
	} else {
		query = query.Where("id = ?", playerID)
	}
	if err := query.First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PlayerInfo{}, notFound(codePlayerNotFound, "player not found")
		}
		return PlayerInfo{}, err
	}
	return PlayerInfo{
		ID:          record.ID,
		DisplayName: record.DisplayName,
		PublicCode:  record.PublicCode,
	}, nil
}

// looseResolver trusts the claimed player_id. Used when no database is
// configured, where there is no players table to check against.
type looseResolver struct{}

func (looseResolver) Resolve(token string, playerID uint) (PlayerInfo, error) {
	if playerID == 0 {
		return PlayerInfo{}, errPlayerRequired
	}
	return PlayerInfo{
		ID:          playerID,
		DisplayName: fmt.Sprintf("player-%d", playerID),
		PublicCode:  fmt.Sprintf("P%04d", playerID),
	}, nil
}

// requireHost gates the host console endpoints behind the configured bearer
// token. An empty HOST_TOKEN leaves the console open for local play.
func (s *Server) requireHost(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.HostToken != "" {
			provided := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			provided = strings.TrimSpace(provided)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(s.cfg.HostToken)) != 1 {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
		}
		next(w, r)
	}
}
