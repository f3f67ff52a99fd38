package employee

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DrOksusu/email-automation/internal/platform/db"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	if err := db.Migrate(ctx, pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return pool
}

func TestStoreCreateIfAbsentConcurrent(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	store := NewStore(pool)
	code := fmt.Sprintf("race-%d", time.Now().UnixNano())

	const callers = 8
	var wg sync.WaitGroup
	got := make([]Employee, callers)
	created := make([]bool, callers)
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i], created[i], errs[i] = store.CreateIfAbsent(ctx, Employee{EmployeeCode: code, Name: "이영희"})
		}()
	}
	wg.Wait()

	createdCount := 0
	for i := range callers {
		if errs[i] != nil {
			t.Fatalf("create %d: %v", i, errs[i])
		}
		if created[i] {
			createdCount++
		}
		if got[i].ID != got[0].ID {
			t.Fatalf("callers resolved different employees: %s vs %s", got[i].ID, got[0].ID)
		}
	}
	if createdCount != 1 {
		t.Fatalf("expected exactly one creation, got %d", createdCount)
	}

	var rows int
	if err := pool.QueryRow(ctx, `SELECT COUNT(1) FROM employees WHERE employee_code = $1`, code).Scan(&rows); err != nil {
		t.Fatalf("count employees: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected one employee row, got %d", rows)
	}
	if got[0].Email != "" {
		t.Fatalf("expected a new employee without email, got %q", got[0].Email)
	}
}

func TestStoreMalformedIDIsNotFound(t *testing.T) {
	store := NewStore(testPool(t))
	if _, err := store.Get(context.Background(), "not-a-uuid"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
