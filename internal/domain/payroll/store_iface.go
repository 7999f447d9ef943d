package payroll

import (
	"context"
	"time"
)

type StoreAPI interface {
	ListRecords(ctx context.Context) ([]Record, error)
	GetRecord(ctx context.Context, id string) (Record, error)
	CreateRecord(ctx context.Context, record Record) (Record, error)
	RecordsByPeriod(ctx context.Context, period string) ([]Record, error)
	// MarkApproved succeeds only from draft; MarkPaid only from approved.
	// Both return ErrInvalidTransition otherwise and leave the record as is.
	MarkApproved(ctx context.Context, id, approvedBy string, at time.Time) (Record, error)
	MarkPaid(ctx context.Context, id, method string, at time.Time) (Record, error)
}
