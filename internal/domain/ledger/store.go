package ledger

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gemura/internal/domain/person"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) ListAdvances(ctx context.Context) ([]Advance, error) {
	return s.queryAdvances(ctx, "", "", true)
}

func (s *Store) AdvancesFor(ctx context.Context, personID string, personType person.PersonType, includeCleared bool) ([]Advance, error) {
	return s.queryAdvances(ctx, personID, personType, includeCleared)
}

func (s *Store) queryAdvances(ctx context.Context, personID string, personType person.PersonType, includeCleared bool) ([]Advance, error) {
	query := `
    SELECT id, person_id, person_name, person_type, amount, remaining_balance, reason, date, status
    FROM advances`
	var args []any
	if personID != "" {
		query += " WHERE person_id = $1 AND person_type = $2"
		args = append(args, personID, string(personType))
		if !includeCleared {
			query += " AND status <> $3"
			args = append(args, StatusCleared)
		}
	}
	query += " ORDER BY date, id"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var advances []Advance
	for rows.Next() {
		var advance Advance
		if err := rows.Scan(&advance.ID, &advance.PersonID, &advance.PersonName, &advance.PersonType,
			&advance.Amount, &advance.RemainingBalance, &advance.Reason, &advance.Date, &advance.Status); err != nil {
			return nil, err
		}
		advances = append(advances, advance)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range advances {
		deductions, err := s.advanceDeductions(ctx, advances[i].ID)
		if err != nil {
			return nil, err
		}
		advances[i].Deductions = deductions
	}
	return advances, nil
}

func (s *Store) advanceDeductions(ctx context.Context, advanceID string) ([]AdvanceDeduction, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, advance_id, payroll_id, amount, date
    FROM advance_deductions
    WHERE advance_id = $1
    ORDER BY date, id
  `, advanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deductions []AdvanceDeduction
	for rows.Next() {
		var deduction AdvanceDeduction
		if err := rows.Scan(&deduction.ID, &deduction.AdvanceID, &deduction.PayrollID, &deduction.Amount, &deduction.Date); err != nil {
			return nil, err
		}
		deductions = append(deductions, deduction)
	}
	return deductions, rows.Err()
}

func (s *Store) GetAdvance(ctx context.Context, id string) (Advance, error) {
	var advance Advance
	err := s.DB.QueryRow(ctx, `
    SELECT id, person_id, person_name, person_type, amount, remaining_balance, reason, date, status
    FROM advances
    WHERE id = $1
  `, id).Scan(&advance.ID, &advance.PersonID, &advance.PersonName, &advance.PersonType,
		&advance.Amount, &advance.RemainingBalance, &advance.Reason, &advance.Date, &advance.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Advance{}, ErrNotFound
		}
		return Advance{}, err
	}
	advance.Deductions, err = s.advanceDeductions(ctx, id)
	if err != nil {
		return Advance{}, err
	}
	return advance, nil
}

func (s *Store) CreateAdvance(ctx context.Context, advance Advance) (Advance, error) {
	advance.RemainingBalance = advance.Amount
	advance.Status = StatusPending
	advance.Deductions = nil
	err := s.DB.QueryRow(ctx, `
    INSERT INTO advances (person_id, person_name, person_type, amount, remaining_balance, reason, date, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, advance.PersonID, advance.PersonName, string(advance.PersonType), advance.Amount,
		advance.RemainingBalance, advance.Reason, advance.Date, advance.Status).Scan(&advance.ID)
	if err != nil {
		return Advance{}, err
	}
	return advance, nil
}

func (s *Store) ApplyAdvanceDeduction(ctx context.Context, id string, amount float64, payrollID string) (Advance, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Advance{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var total, remaining float64
	err = tx.QueryRow(ctx, "SELECT amount, remaining_balance FROM advances WHERE id = $1 FOR UPDATE", id).
		Scan(&total, &remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Advance{}, ErrNotFound
		}
		return Advance{}, err
	}
	if remaining == 0 {
		return Advance{}, ErrAlreadyCleared
	}
	if amount > remaining {
		return Advance{}, ErrOverDeduction
	}

	remaining -= amount
	if _, err := tx.Exec(ctx, "UPDATE advances SET remaining_balance = $2, status = $3 WHERE id = $1",
		id, remaining, StatusFor(remaining, total)); err != nil {
		return Advance{}, err
	}
	if _, err := tx.Exec(ctx, `
    INSERT INTO advance_deductions (advance_id, payroll_id, amount, date)
    VALUES ($1,$2,$3,now())
  `, id, payrollID, amount); err != nil {
		return Advance{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Advance{}, err
	}
	return s.GetAdvance(ctx, id)
}

func (s *Store) ListProductDebts(ctx context.Context) ([]ProductDebt, error) {
	return s.queryDebts(ctx, "", "", true)
}

func (s *Store) ProductDebtsFor(ctx context.Context, personID string, personType person.PersonType, includeCleared bool) ([]ProductDebt, error) {
	return s.queryDebts(ctx, personID, personType, includeCleared)
}

func (s *Store) queryDebts(ctx context.Context, personID string, personType person.PersonType, includeCleared bool) ([]ProductDebt, error) {
	query := `
    SELECT id, person_id, person_name, person_type, total_amount, remaining_balance, date, status
    FROM product_debts`
	var args []any
	if personID != "" {
		query += " WHERE person_id = $1 AND person_type = $2"
		args = append(args, personID, string(personType))
		if !includeCleared {
			query += " AND status <> $3"
			args = append(args, StatusCleared)
		}
	}
	query += " ORDER BY date, id"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var debts []ProductDebt
	for rows.Next() {
		var debt ProductDebt
		if err := rows.Scan(&debt.ID, &debt.PersonID, &debt.PersonName, &debt.PersonType,
			&debt.TotalAmount, &debt.RemainingBalance, &debt.Date, &debt.Status); err != nil {
			return nil, err
		}
		debts = append(debts, debt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range debts {
		items, err := s.debtItems(ctx, debts[i].ID)
		if err != nil {
			return nil, err
		}
		debts[i].Items = items
	}
	return debts, nil
}

func (s *Store) debtItems(ctx context.Context, debtID string) ([]DebtItem, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT product_name, quantity, unit_price, total_price
    FROM product_debt_items
    WHERE debt_id = $1
    ORDER BY position
  `, debtID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []DebtItem
	for rows.Next() {
		var item DebtItem
		if err := rows.Scan(&item.ProductName, &item.Quantity, &item.UnitPrice, &item.TotalPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) GetProductDebt(ctx context.Context, id string) (ProductDebt, error) {
	var debt ProductDebt
	err := s.DB.QueryRow(ctx, `
    SELECT id, person_id, person_name, person_type, total_amount, remaining_balance, date, status
    FROM product_debts
    WHERE id = $1
  `, id).Scan(&debt.ID, &debt.PersonID, &debt.PersonName, &debt.PersonType,
		&debt.TotalAmount, &debt.RemainingBalance, &debt.Date, &debt.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProductDebt{}, ErrNotFound
		}
		return ProductDebt{}, err
	}
	debt.Items, err = s.debtItems(ctx, id)
	if err != nil {
		return ProductDebt{}, err
	}
	return debt, nil
}

func (s *Store) CreateProductDebt(ctx context.Context, debt ProductDebt) (ProductDebt, error) {
	debt.RemainingBalance = debt.TotalAmount
	debt.Status = StatusPending

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return ProductDebt{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
    INSERT INTO product_debts (person_id, person_name, person_type, total_amount, remaining_balance, date, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, debt.PersonID, debt.PersonName, string(debt.PersonType), debt.TotalAmount,
		debt.RemainingBalance, debt.Date, debt.Status).Scan(&debt.ID)
	if err != nil {
		return ProductDebt{}, err
	}
	for i, item := range debt.Items {
		if _, err := tx.Exec(ctx, `
      INSERT INTO product_debt_items (debt_id, position, product_name, quantity, unit_price, total_price)
      VALUES ($1,$2,$3,$4,$5,$6)
    `, debt.ID, i, item.ProductName, item.Quantity, item.UnitPrice, item.TotalPrice); err != nil {
			return ProductDebt{}, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return ProductDebt{}, err
	}
	return debt, nil
}

func (s *Store) ApplyDebtDeduction(ctx context.Context, id string, amount float64) (ProductDebt, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return ProductDebt{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var total, remaining float64
	err = tx.QueryRow(ctx, "SELECT total_amount, remaining_balance FROM product_debts WHERE id = $1 FOR UPDATE", id).
		Scan(&total, &remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProductDebt{}, ErrNotFound
		}
		return ProductDebt{}, err
	}
	if remaining == 0 {
		return ProductDebt{}, ErrAlreadyCleared
	}
	if amount > remaining {
		return ProductDebt{}, ErrOverDeduction
	}

	remaining -= amount
	if _, err := tx.Exec(ctx, "UPDATE product_debts SET remaining_balance = $2, status = $3 WHERE id = $1",
		id, remaining, StatusFor(remaining, total)); err != nil {
		return ProductDebt{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return ProductDebt{}, err
	}
	return s.GetProductDebt(ctx, id)
}
