//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

const DefaultListingName = "Seaside Cottage"

// CreateTestListing inserts a listing and returns its ID. Repeated calls with
// the same name reuse the existing row.
func CreateTestListing(t *testing.T, db DBLike, name, nightlyPrice, currency string) uuid.UUID {
	t.Helper()

	listingID := uuid.New()
	ctx := context.Background()

	var existing uuid.UUID
	err := db.QueryRow(ctx, "SELECT id FROM listings WHERE name = $1 LIMIT 1", name).Scan(&existing)
	if err == nil {
		return existing
	}

	_, err = db.Exec(ctx,
		"INSERT INTO listings (id, name, nightly_price, currency) VALUES ($1, $2, $3::numeric, $4)",
		listingID, name, nightlyPrice, currency)
	require.NoError(t, err)

	return listingID
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO listings (id, name, nightly_price, currency)
		SELECT gen_random_uuid(), $1, 120.00, 'EUR'
		WHERE NOT EXISTS (SELECT 1 FROM listings WHERE name = $1);
	`, DefaultListingName)
	if err != nil {
		return err
	}

	return nil
}

// DefaultListingID looks up the seeded listing.
func DefaultListingID(t *testing.T, db DBLike) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(),
		"SELECT id FROM listings WHERE name = $1 LIMIT 1", DefaultListingName).Scan(&id)
	require.NoError(t, err)
	return id
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
