//go:build e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is the subset of pgx used by the fixtures.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	truncateOnce sync.Once
	truncateSQL  string
	truncateErr  error
)

// ResetDB truncates every application table.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	truncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename <> 'schema_migrations'`)
		if err != nil {
			truncateErr = err
			return
		}
		tables, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			truncateErr = err
			return
		}
		if len(tables) == 0 {
			truncateSQL = "SELECT 1"
			return
		}
		truncateSQL = "TRUNCATE " + strings.Join(tables, ", ") + " CASCADE"
	})
	if truncateErr != nil {
		return fmt.Errorf("failed to build TRUNCATE SQL: %w", truncateErr)
	}
	_, err := pool.Exec(ctx, truncateSQL)
	return err
}

func SpotState(t *testing.T, db DBLike, spotID uuid.UUID) (string, int64) {
	t.Helper()
	var (
		state   string
		version int64
	)
	err := db.QueryRow(context.Background(),
		"SELECT state, version FROM spots WHERE id = $1", spotID).Scan(&state, &version)
	require.NoError(t, err)
	return state, version
}

func FreeCount(t *testing.T, db DBLike, facilityID uuid.UUID) int {
	t.Helper()
	var free int
	err := db.QueryRow(context.Background(),
		"SELECT free_count FROM facilities WHERE id = $1", facilityID).Scan(&free)
	require.NoError(t, err)
	return free
}

func CountRows(t *testing.T, db DBLike, table string) int {
	t.Helper()
	var n int
	err := db.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+pgx.Identifier{table}.Sanitize()).Scan(&n)
	require.NoError(t, err)
	return n
}

func CountOutbox(t *testing.T, db DBLike, topic string) int {
	t.Helper()
	var n int
	err := db.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM outbox_events WHERE topic = $1", topic).Scan(&n)
	require.NoError(t, err)
	return n
}
