package server

import (
	"net/http"
	"time"

	"red-light/internal/config"

	"gorm.io/gorm"
)

type Server struct {
	store        *Store
	db           *gorm.DB
	cfg          config.Config
	ledger       Ledger
	resolver     PlayerResolver
	hub          *hostHub
	offlineAfter time.Duration
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	s := &Server{
		store:        NewStore(),
		db:           conn,
		cfg:          cfg,
		ledger:       nopLedger{},
		resolver:     looseResolver{},
		hub:          newHostHub(),
		offlineAfter: time.Duration(cfg.OfflineAfterMillis) * time.Millisecond,
	}
	if conn != nil {
		s.ledger = NewDBLedger(conn)
		s.resolver = NewDBResolver(conn)
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/game/join", s.handleJoin)
	mux.HandleFunc("POST /api/game/heartbeat", s.handleHeartbeat)
	mux.HandleFunc("POST /api/game/motion", s.handleMotion)
	mux.HandleFunc("POST /api/game/status", s.handleStatus)
	mux.HandleFunc("GET /api/host/state", s.requireHost(s.handleHostState))
	mux.HandleFunc("POST /api/host/start", s.requireHost(s.handleStartRound))
	mux.HandleFunc("POST /api/host/end", s.requireHost(s.handleEndRound))
	mux.HandleFunc("POST /api/host/finish", s.requireHost(s.handleFinishGame))
	mux.HandleFunc("POST /api/host/reset", s.requireHost(s.handleReset))
	mux.HandleFunc("GET /ws/host", s.requireHost(s.handleHostWebsocket))
	mux.HandleFunc("GET /api/healthz", handleHealthz)
	return mux
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeOK(w, nil)
}
