package dispatch

import (
	"context"
	"time"
)

type StoreAPI interface {
	CreatePending(ctx context.Context, recordID, recipient, subject string) (Log, error)
	MarkSent(ctx context.Context, id string, at time.Time) error
	MarkFailed(ctx context.Context, id, message string) error
	ListRecent(ctx context.Context, limit int) ([]HistoryEntry, error)
}
