package server

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	kindValidation     = "VALIDATION"
	kindStateConflict  = "STATE_CONFLICT"
	kindNotFound       = "NOT_FOUND"
	kindInfrastructure = "INFRASTRUCTURE"
)

const (
	codeInvalidState       = "INVALID_STATE"
	codeNotEnoughPlayers   = "NOT_ENOUGH_PLAYERS"
	codeInvalidWinnerCount = "INVALID_WINNER_COUNT"
	codePlayerRequired     = "PLAYER_REQUIRED"
	codePlayerNotFound     = "PLAYER_NOT_FOUND"
	codeNoActiveSession    = "NO_ACTIVE_SESSION"
	codeNotParticipant     = "NOT_A_PARTICIPANT"
)

// gameError carries the machine-readable taxonomy of the command API. Race
// no-ops are deliberately not errors; they fold into success responses with
// ignored=true.
type gameError struct {
	Kind    string
	Code    string
	Message string
}

func (e *gameError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

func validationError(message string) *gameError {
	return &gameError{Kind: kindValidation, Message: message}
}

func stateConflict(code, message string) *gameError {
	return &gameError{Kind: kindStateConflict, Code: code, Message: message}
}

func notFound(code, message string) *gameError {
	return &gameError{Kind: kindNotFound, Code: code, Message: message}
}

var errNoActiveSession = notFound(codeNoActiveSession, "no active session")

func httpStatusFor(err *gameError) int {
	switch err.Kind {
	case kindValidation:
		return http.StatusBadRequest
	case kindStateConflict:
		return http.StatusConflict
	case kindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeGameError renders a typed engine error; anything else is surfaced
// generically as an infrastructure failure.
func writeGameError(w http.ResponseWriter, err error) {
	var ge *gameError
	if errors.As(err, &ge) {
		writeJSON(w, httpStatusFor(ge), map[string]any{
			"ok":    false,
			"kind":  ge.Kind,
			"code":  ge.Code,
			"error": ge.Message,
		})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"ok":    false,
		"kind":  kindInfrastructure,
		"error": "internal error",
	})
}
