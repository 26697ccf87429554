package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

type recordingExecer struct {
	stmts []string
	err   error
}

func (e *recordingExecer) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	e.stmts = append(e.stmts, sql)
	return pgconn.CommandTag{}, e.err
}

func TestRunMigration_ExecutesEveryStatement(t *testing.T) {
	db := &recordingExecer{}
	if err := RunMigration(context.Background(), db); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(db.stmts) != len(migrationStatements) {
		t.Fatalf("expected %d statements, got %d", len(migrationStatements), len(db.stmts))
	}
	if !strings.Contains(db.stmts[0], "UNIQUE(session_id, email, phone)") {
		t.Fatalf("subscriptions table must be unique per contact, got %s", db.stmts[0])
	}
}

func TestRunMigration_StopsOnError(t *testing.T) {
	db := &recordingExecer{err: errors.New("permission denied")}
	if err := RunMigration(context.Background(), db); err == nil {
		t.Fatal("expected error")
	}
	if len(db.stmts) != 1 {
		t.Fatalf("expected migration to stop after first failure, got %d statements", len(db.stmts))
	}
}
