package payroll

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) ListRecords(_ context.Context) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Record, len(m.records))
	for i, record := range m.records {
		out[i] = cloneRecord(record)
	}
	return out, nil
}

func (m *MemoryStore) GetRecord(_ context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, record := range m.records {
		if record.ID == id {
			return cloneRecord(record), nil
		}
	}
	return Record{}, ErrNotFound
}

func (m *MemoryStore) CreateRecord(_ context.Context, record Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record.ID = uuid.NewString()
	record.CreatedAt = time.Now().UTC()
	m.records = append(m.records, record)
	return cloneRecord(record), nil
}

func (m *MemoryStore) RecordsByPeriod(_ context.Context, period string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Record
	for _, record := range m.records {
		if record.Period == period {
			out = append(out, cloneRecord(record))
		}
	}
	return out, nil
}

func (m *MemoryStore) MarkApproved(_ context.Context, id, approvedBy string, at time.Time) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		record := &m.records[i]
		if record.ID != id {
			continue
		}
		if record.Status != StatusDraft {
			return Record{}, ErrInvalidTransition
		}
		record.Status = StatusApproved
		record.ApprovedBy = approvedBy
		record.ApprovedAt = &at
		return cloneRecord(*record), nil
	}
	return Record{}, ErrNotFound
}

func (m *MemoryStore) MarkPaid(_ context.Context, id, method string, at time.Time) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		record := &m.records[i]
		if record.ID != id {
			continue
		}
		if record.Status != StatusApproved {
			return Record{}, ErrInvalidTransition
		}
		record.Status = StatusPaid
		record.PaymentMethod = method
		record.PaidAt = &at
		return cloneRecord(*record), nil
	}
	return Record{}, ErrNotFound
}

func cloneRecord(record Record) Record {
	deductions := make([]Deduction, len(record.Deductions))
	copy(deductions, record.Deductions)
	record.Deductions = deductions
	if record.ApprovedAt != nil {
		at := *record.ApprovedAt
		record.ApprovedAt = &at
	}
	if record.PaidAt != nil {
		at := *record.PaidAt
		record.PaidAt = &at
	}
	return record
}
