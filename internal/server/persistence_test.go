package server

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := &pgconn.PgError{Code: "23505"}
	if !isUniqueViolation(uniqueErr) {
		t.Fatal("expected 23505 to be a unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("create failed: %w", uniqueErr)) {
		t.Fatal("expected wrapped 23505 to be a unique violation")
	}
	otherErr := &pgconn.PgError{Code: "22001"}
	if isUniqueViolation(otherErr) {
		t.Fatal("22001 is not a unique violation")
	}
	if isUniqueViolation(errors.New("plain error")) {
		t.Fatal("plain errors are not unique violations")
	}
}
