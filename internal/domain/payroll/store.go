package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

const recordColumns = `
    id, person_id, person_name, person_type, period, period_start, period_end,
    gross_amount, total_deductions, net_amount, status,
    COALESCE(approved_by, ''), approved_at, paid_at, COALESCE(payment_method, ''),
    COALESCE(notes, ''), created_at`

func scanRecord(row pgx.Row) (Record, error) {
	var record Record
	err := row.Scan(&record.ID, &record.PersonID, &record.PersonName, &record.PersonType,
		&record.Period, &record.PeriodStart, &record.PeriodEnd,
		&record.GrossAmount, &record.TotalDeductions, &record.NetAmount, &record.Status,
		&record.ApprovedBy, &record.ApprovedAt, &record.PaidAt, &record.PaymentMethod,
		&record.Notes, &record.CreatedAt)
	return record, err
}

func (s *Store) ListRecords(ctx context.Context) ([]Record, error) {
	return s.queryRecords(ctx, "SELECT"+recordColumns+" FROM payroll_records ORDER BY created_at, id")
}

func (s *Store) RecordsByPeriod(ctx context.Context, period string) ([]Record, error) {
	return s.queryRecords(ctx, "SELECT"+recordColumns+" FROM payroll_records WHERE period = $1 ORDER BY created_at, id", period)
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range records {
		deductions, err := s.recordDeductions(ctx, records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Deductions = deductions
	}
	return records, nil
}

func (s *Store) recordDeductions(ctx context.Context, recordID string) ([]Deduction, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT kind, description, amount, COALESCE(reference_id, '')
    FROM payroll_deductions
    WHERE record_id = $1
    ORDER BY position
  `, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deductions []Deduction
	for rows.Next() {
		var deduction Deduction
		if err := rows.Scan(&deduction.Kind, &deduction.Description, &deduction.Amount, &deduction.ReferenceID); err != nil {
			return nil, err
		}
		deductions = append(deductions, deduction)
	}
	return deductions, rows.Err()
}

func (s *Store) GetRecord(ctx context.Context, id string) (Record, error) {
	record, err := scanRecord(s.DB.QueryRow(ctx, "SELECT"+recordColumns+" FROM payroll_records WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	record.Deductions, err = s.recordDeductions(ctx, id)
	if err != nil {
		return Record{}, err
	}
	return record, nil
}

func (s *Store) CreateRecord(ctx context.Context, record Record) (Record, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Record{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
    INSERT INTO payroll_records
      (person_id, person_name, person_type, period, period_start, period_end,
       gross_amount, total_deductions, net_amount, status, notes)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    RETURNING id, created_at
  `, record.PersonID, record.PersonName, string(record.PersonType), record.Period,
		record.PeriodStart, record.PeriodEnd, record.GrossAmount, record.TotalDeductions,
		record.NetAmount, record.Status, nullIfEmpty(record.Notes)).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return Record{}, err
	}

	for i, deduction := range record.Deductions {
		if _, err := tx.Exec(ctx, `
      INSERT INTO payroll_deductions (record_id, position, kind, description, amount, reference_id)
      VALUES ($1,$2,$3,$4,$5,$6)
    `, record.ID, i, deduction.Kind, deduction.Description, deduction.Amount,
			nullIfEmpty(deduction.ReferenceID)); err != nil {
			return Record{}, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return Record{}, err
	}
	return record, nil
}

func (s *Store) MarkApproved(ctx context.Context, id, approvedBy string, at time.Time) (Record, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE payroll_records
    SET status = $3, approved_by = $4, approved_at = $5
    WHERE id = $1 AND status = $2
  `, id, StatusDraft, StatusApproved, approvedBy, at)
	if err != nil {
		return Record{}, err
	}
	if tag.RowsAffected() == 0 {
		return Record{}, s.transitionFailure(ctx, id)
	}
	return s.GetRecord(ctx, id)
}

func (s *Store) MarkPaid(ctx context.Context, id, method string, at time.Time) (Record, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE payroll_records
    SET status = $3, payment_method = $4, paid_at = $5
    WHERE id = $1 AND status = $2
  `, id, StatusApproved, StatusPaid, method, at)
	if err != nil {
		return Record{}, err
	}
	if tag.RowsAffected() == 0 {
		return Record{}, s.transitionFailure(ctx, id)
	}
	return s.GetRecord(ctx, id)
}

func (s *Store) transitionFailure(ctx context.Context, id string) error {
	var status string
	err := s.DB.QueryRow(ctx, "SELECT status FROM payroll_records WHERE id = $1", id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrInvalidTransition
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
