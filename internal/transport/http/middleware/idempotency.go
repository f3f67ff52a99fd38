package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrIdempotencyConflict   = errors.New("idempotency key conflicts with existing request")
	ErrIdempotencyInProgress = errors.New("idempotency key is held by a request still in progress")
)

// IdempotencyStore remembers the response of a keyed request so a client
// retry replays it instead of repeating the work. A key is reserved before the
// work starts, so concurrent requests with one key cannot both run it. A nil
// store or pool disables the check.
type IdempotencyStore struct {
	db *pgxpool.Pool
}

func NewIdempotencyStore(db *pgxpool.Pool) *IdempotencyStore {
	return &IdempotencyStore{db: db}
}

func RequestHash(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Reserve claims key for this request. It returns the stored response with
// true when an earlier request with the same body already completed, and
// ErrIdempotencyInProgress while that request has not saved its response.
func (s *IdempotencyStore) Reserve(ctx context.Context, actor, endpoint, key, requestHash string) (json.RawMessage, bool, error) {
	if s == nil || s.db == nil {
		return nil, false, nil
	}
	tag, err := s.db.Exec(ctx, `
    INSERT INTO idempotency_keys (actor, key, endpoint, request_hash, response_json)
    VALUES ($1, $2, $3, $4, NULL)
    ON CONFLICT (actor, key, endpoint) DO NOTHING
  `, actor, key, endpoint, requestHash)
	if err != nil {
		return nil, false, err
	}
	if tag.RowsAffected() == 1 {
		return nil, false, nil
	}

	var storedHash string
	var pending bool
	var stored json.RawMessage
	err = s.db.QueryRow(ctx, `
    SELECT request_hash, response_json IS NULL, COALESCE(response_json, 'null'::jsonb)
    FROM idempotency_keys
    WHERE actor = $1 AND key = $2 AND endpoint = $3
  `, actor, key, endpoint).Scan(&storedHash, &pending, &stored)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, ErrIdempotencyInProgress
	}
	if err != nil {
		return nil, false, err
	}
	if storedHash != requestHash {
		return nil, false, ErrIdempotencyConflict
	}
	if pending {
		return nil, false, ErrIdempotencyInProgress
	}
	return stored, true, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, actor, endpoint, key, requestHash string, response json.RawMessage) error {
	if s == nil || s.db == nil {
		return nil
	}
	tag, err := s.db.Exec(ctx, `
    INSERT INTO idempotency_keys (actor, key, endpoint, request_hash, response_json)
    VALUES ($1, $2, $3, $4, $5)
    ON CONFLICT (actor, key, endpoint)
    DO UPDATE SET response_json = EXCLUDED.response_json
    WHERE idempotency_keys.request_hash = EXCLUDED.request_hash
  `, actor, key, endpoint, requestHash, response)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrIdempotencyConflict
	}
	return nil
}

// Release drops a reservation whose request never ran. Completed keys are
// left alone.
func (s *IdempotencyStore) Release(ctx context.Context, actor, endpoint, key string) error {
	if s == nil || s.db == nil {
		return nil
	}
	_, err := s.db.Exec(ctx, `
    DELETE FROM idempotency_keys
    WHERE actor = $1 AND key = $2 AND endpoint = $3 AND response_json IS NULL
  `, actor, key, endpoint)
	return err
}
