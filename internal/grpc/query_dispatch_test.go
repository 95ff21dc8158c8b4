package grpc

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/chomba/rackd/internal/db"
	"github.com/chomba/rackd/internal/store"
)

// noRowsExecutor simulates a database that has nothing in it: every
// QueryRow scan reports pgx.ErrNoRows, matching store.LoadSnapshot's
// not-found path without needing a real Postgres connection.
type noRowsExecutor struct{}

func (noRowsExecutor) Exec(ctx context.Context, sql string, args ...any) (db.Result, error) {
	return nil, nil
}
func (noRowsExecutor) QueryRow(ctx context.Context, sql string, args ...any) db.Row {
	return noRowsRow{}
}
func (noRowsExecutor) Query(ctx context.Context, sql string, args ...any) (db.Rows, error) {
	return nil, nil
}

type noRowsRow struct{}

func (noRowsRow) Scan(dest ...any) error { return pgx.ErrNoRows }

func TestRunQueryLoadWanNotFound(t *testing.T) {
	const fixedID = "00000000-0000-0000-0000-000000000001"
	_, err := runQuery(context.Background(), noRowsExecutor{}, "LoadWan", []byte(`{"ID":"`+fixedID+`"}`))
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want store.ErrNotFound", err)
	}
}

func TestRunQueryUnknownKind(t *testing.T) {
	if _, err := runQuery(context.Background(), noRowsExecutor{}, "NotAQuery", nil); err == nil {
		t.Fatal("expected error for unknown query kind")
	}
}

func TestRunQueryBadParams(t *testing.T) {
	if _, err := runQuery(context.Background(), noRowsExecutor{}, "LoadWan", []byte(`{not json`)); err == nil {
		t.Fatal("expected error for malformed params")
	}
}
