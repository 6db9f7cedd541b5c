package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/riyazmd/unified-event-analytics/internal/keys"
)

// schemaSQL is embedded so the service can self-bootstrap its database schema.
//
//go:embed schema.sql
var schemaSQL string

// Event is a single tracked client action as persisted in the events table.
// Rows are append-only; an event is never updated after insertion.
type Event struct {
	ID        string
	AppID     string
	EventType string
	URL       string
	Referrer  string
	Device    string
	IPAddress string
	UserID    string
	Timestamp time.Time
	Metadata  map[string]interface{}
}

// PostgresStore is the durable persistence layer: API key mappings and the
// append-only event log live in the same database.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a connection pool and fails fast if DB is unreachable.
func NewPostgresStore(dbURL string) (*PostgresStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}
	cfg.MaxConns = 20
	cfg.MinConns = 2
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.ConnConfig.ConnectTimeout = 10 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// EnsureSchema applies schema.sql. Safe to run multiple times.
func (p *PostgresStore) EnsureSchema() error {
	_, err := p.pool.Exec(context.Background(), schemaSQL)
	return err
}

// Ping is used by the readiness endpoint to validate DB connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close shuts down the connection pool.
func (p *PostgresStore) Close() {
	p.pool.Close()
}

// CreateKey issues a fresh API key for appID and persists the mapping.
//
// Uniqueness is enforced by the primary key on app_id: under concurrent
// registration for the same identity exactly one insert wins and every other
// caller gets ErrDuplicateApp. RETURNING produces no rows on conflict.
func (p *PostgresStore) CreateKey(ctx context.Context, appID string) (string, error) {
	if appID == "" {
		return "", errors.New("appID required")
	}

	apiKey, err := keys.Generate()
	if err != nil {
		return "", err
	}

	var one int
	err = p.pool.QueryRow(ctx, `
		INSERT INTO api_keys(app_id, api_key)
		VALUES ($1, $2)
		ON CONFLICT (app_id) DO NOTHING
		RETURNING 1
	`, appID, apiKey).Scan(&one)

	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrDuplicateApp
	}
	if err != nil {
		return "", err
	}
	return apiKey, nil
}

// LookupKey returns the API key issued to appID, or ErrNotFound.
func (p *PostgresStore) LookupKey(ctx context.Context, appID string) (string, error) {
	var apiKey string
	err := p.pool.QueryRow(ctx, `
		SELECT api_key FROM api_keys WHERE app_id = $1
	`, appID).Scan(&apiKey)

	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return apiKey, nil
}

// ValidateKey resolves an API key to the owning appID, or ErrInvalidKey.
// The lookup is an exact-match probe on the unique api_key index, so no
// prefix-dependent comparison runs in application code.
func (p *PostgresStore) ValidateKey(ctx context.Context, apiKey string) (string, error) {
	if apiKey == "" {
		return "", ErrInvalidKey
	}

	var appID string
	err := p.pool.QueryRow(ctx, `
		SELECT app_id FROM api_keys WHERE api_key = $1
	`, apiKey).Scan(&appID)

	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrInvalidKey
	}
	if err != nil {
		return "", err
	}
	return appID, nil
}

// RevokeKey deletes the mapping for appID. Subsequent ValidateKey calls with
// the old key fail with ErrInvalidKey.
func (p *PostgresStore) RevokeKey(ctx context.Context, appID string) error {
	tag, err := p.pool.Exec(ctx, `
		DELETE FROM api_keys WHERE app_id = $1
	`, appID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendEvent persists a single event. The insert is one row, so the event
// becomes visible to queries atomically or not at all.
func (p *PostgresStore) AppendEvent(ctx context.Context, ev Event) (string, error) {
	if ev.ID == "" || ev.AppID == "" || ev.EventType == "" {
		return "", errors.New("id/appID/eventType required")
	}

	meta := ev.Metadata
	if meta == nil {
		meta = map[string]interface{}{}
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return "", err
	}

	_, err = p.pool.Exec(ctx, `
		INSERT INTO events(id, app_id, event_type, url, referrer, device, ip_address, user_id, ts, metadata)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, ev.ID, ev.AppID, ev.EventType, ev.URL, ev.Referrer, ev.Device, ev.IPAddress, ev.UserID, ev.Timestamp, metaJSON)
	if err != nil {
		return "", err
	}
	return ev.ID, nil
}

// CountByTypeInRange aggregates events of eventType with ts in [from, to).
//
// It distinguishes "this type has never been recorded" (ErrNotFound) from
// "the type exists but the window is empty" (zero counts). uniqueUsers counts
// distinct user identifiers, falling back to the client IP when the event
// carried no user ID.
func (p *PostgresStore) CountByTypeInRange(ctx context.Context, eventType string, from, to time.Time) (int64, int64, error) {
	var exists bool
	err := p.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM events WHERE event_type = $1)
	`, eventType).Scan(&exists)
	if err != nil {
		return 0, 0, err
	}
	if !exists {
		return 0, 0, ErrNotFound
	}

	var total, unique int64
	err = p.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(DISTINCT COALESCE(NULLIF(user_id, ''), ip_address))
		FROM events
		WHERE event_type = $1
		  AND ts >= $2
		  AND ts <  $3
	`, eventType, from, to).Scan(&total, &unique)
	if err != nil {
		return 0, 0, err
	}
	return total, unique, nil
}

// CountByUser returns the total number of events recorded for userID, or
// ErrNotFound when the user has no events.
func (p *PostgresStore) CountByUser(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := p.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM events WHERE user_id = $1
	`, userID).Scan(&total)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, ErrNotFound
	}
	return total, nil
}
