package middleware

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DrOksusu/email-automation/internal/platform/db"
)

func TestRequestHashDeterministic(t *testing.T) {
	hash1 := RequestHash([]byte("payload"))
	hash2 := RequestHash([]byte("payload"))
	hash3 := RequestHash([]byte("other"))

	if hash1 != hash2 {
		t.Fatal("expected deterministic hash")
	}
	if hash1 == hash3 {
		t.Fatal("expected different hash for different payload")
	}
}

func TestNilIdempotencyStoreIsDisabled(t *testing.T) {
	var store *IdempotencyStore
	stored, found, err := store.Reserve(context.Background(), "payroll@example.com", "payslips.send", "k1", "h")
	if err != nil || found || stored != nil {
		t.Fatalf("expected disabled store, got %s %v %v", stored, found, err)
	}
	if err := store.Save(context.Background(), "payroll@example.com", "payslips.send", "k1", "h", []byte(`{}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Release(context.Background(), "payroll@example.com", "payslips.send", "k1"); err != nil {
		t.Fatalf("release: %v", err)
	}
}

func TestIdempotencyStoreReservation(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()
	if err := db.Migrate(ctx, pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	store := NewIdempotencyStore(pool)
	actor := "ops@example.com"
	endpoint := "POST /payslips/send-emails"
	key := fmt.Sprintf("k-%d", time.Now().UnixNano())

	if _, replay, err := store.Reserve(ctx, actor, endpoint, key, "h1"); err != nil || replay {
		t.Fatalf("expected a fresh reservation, got replay=%v err=%v", replay, err)
	}
	if _, _, err := store.Reserve(ctx, actor, endpoint, key, "h1"); !errors.Is(err, ErrIdempotencyInProgress) {
		t.Fatalf("expected ErrIdempotencyInProgress, got %v", err)
	}
	if _, _, err := store.Reserve(ctx, actor, endpoint, key, "h2"); !errors.Is(err, ErrIdempotencyConflict) {
		t.Fatalf("expected ErrIdempotencyConflict, got %v", err)
	}
	if err := store.Save(ctx, actor, endpoint, key, "h1", []byte(`{"sent":1}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Release(ctx, actor, endpoint, key); err != nil {
		t.Fatalf("release: %v", err)
	}
	stored, replay, err := store.Reserve(ctx, actor, endpoint, key, "h1")
	if err != nil || !replay || string(stored) != `{"sent": 1}` {
		t.Fatalf("expected stored replay, got %s replay=%v err=%v", stored, replay, err)
	}

	released := key + "-released"
	if _, _, err := store.Reserve(ctx, actor, endpoint, released, "h1"); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := store.Release(ctx, actor, endpoint, released); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, replay, err := store.Reserve(ctx, actor, endpoint, released, "h1"); err != nil || replay {
		t.Fatalf("expected the released key to be reservable again, got replay=%v err=%v", replay, err)
	}
}
