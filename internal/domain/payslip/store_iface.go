package payslip

import "context"

type StoreAPI interface {
	CreateBatch(ctx context.Context, batch Batch) (Batch, error)
	UpsertRecord(ctx context.Context, employeeID, period string, fields Fields) (Record, bool, error)
	GetRecord(ctx context.Context, id string) (Record, error)
	ListRecords(ctx context.Context, period string) ([]RecordView, error)
}
