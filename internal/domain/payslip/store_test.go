package payslip

import (
	"context"
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

func TestStoreUpsertRecordConcurrent(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	store := NewStore(pool)

	var employeeID string
	code := fmt.Sprintf("upsert-%d", time.Now().UnixNano())
	if err := pool.QueryRow(ctx, `INSERT INTO employees (employee_code, name) VALUES ($1, '김민수') RETURNING id`, code).Scan(&employeeID); err != nil {
		t.Fatalf("insert employee: %v", err)
	}

	const writers = 8
	var wg sync.WaitGroup
	created := make([]bool, writers)
	errs := make([]error, writers)
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, created[i], errs[i] = store.UpsertRecord(ctx, employeeID, "2024-12", Fields{BasicSalary: int64(1000 + i)})
		}()
	}
	wg.Wait()

	createdCount := 0
	for i := range writers {
		if errs[i] != nil {
			t.Fatalf("upsert %d: %v", i, errs[i])
		}
		if created[i] {
			createdCount++
		}
	}
	if createdCount != 1 {
		t.Fatalf("expected exactly one created=true, got %d", createdCount)
	}

	var rows int
	if err := pool.QueryRow(ctx, `SELECT COUNT(1) FROM payslips WHERE employee_id = $1 AND period = '2024-12'`, employeeID).Scan(&rows); err != nil {
		t.Fatalf("count payslips: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected one row for the key, got %d", rows)
	}

	rec, wasCreated, err := store.UpsertRecord(ctx, employeeID, "2024-12", Fields{BasicSalary: 3500000, NetPayment: 3100000})
	if err != nil {
		t.Fatalf("re-upsert: %v", err)
	}
	if wasCreated || rec.BasicSalary != 3500000 || rec.NetPayment != 3100000 {
		t.Fatalf("expected an update overwriting fields, got created=%v %+v", wasCreated, rec)
	}
}
