package person

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, phone, COALESCE(email, ''), role, department, base_salary,
           COALESCE(bank_name, ''), COALESCE(bank_account, ''), hire_date, status, created_at
    FROM employees
    ORDER BY created_at
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var employee Employee
		if err := rows.Scan(&employee.ID, &employee.Name, &employee.Phone, &employee.Email,
			&employee.Role, &employee.Department, &employee.BaseSalary,
			&employee.BankName, &employee.BankAccount, &employee.HireDate,
			&employee.Status, &employee.CreatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, id string) (Employee, error) {
	var employee Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, phone, COALESCE(email, ''), role, department, base_salary,
           COALESCE(bank_name, ''), COALESCE(bank_account, ''), hire_date, status, created_at
    FROM employees
    WHERE id = $1
  `, id).Scan(&employee.ID, &employee.Name, &employee.Phone, &employee.Email,
		&employee.Role, &employee.Department, &employee.BaseSalary,
		&employee.BankName, &employee.BankAccount, &employee.HireDate,
		&employee.Status, &employee.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, ErrNotFound
		}
		return Employee{}, err
	}
	return employee, nil
}

func (s *Store) CreateEmployee(ctx context.Context, employee Employee) (Employee, error) {
	if employee.Status == "" {
		employee.Status = StatusActive
	}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (name, phone, email, role, department, base_salary, bank_name, bank_account, hire_date, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING id, created_at
  `, employee.Name, employee.Phone, nullIfEmpty(employee.Email), employee.Role, employee.Department,
		employee.BaseSalary, nullIfEmpty(employee.BankName), nullIfEmpty(employee.BankAccount),
		employee.HireDate, employee.Status).Scan(&employee.ID, &employee.CreatedAt)
	if err != nil {
		return Employee{}, err
	}
	return employee, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, id string, update EmployeeUpdate) (Employee, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees SET
      name = COALESCE($2, name),
      phone = COALESCE($3, phone),
      email = COALESCE($4, email),
      role = COALESCE($5, role),
      department = COALESCE($6, department),
      base_salary = COALESCE($7, base_salary),
      bank_name = COALESCE($8, bank_name),
      bank_account = COALESCE($9, bank_account),
      hire_date = COALESCE($10, hire_date),
      status = COALESCE($11, status)
    WHERE id = $1
  `, id, update.Name, update.Phone, update.Email, update.Role, update.Department,
		update.BaseSalary, update.BankName, update.BankAccount, update.HireDate, update.Status)
	if err != nil {
		return Employee{}, err
	}
	if tag.RowsAffected() == 0 {
		return Employee{}, ErrNotFound
	}
	return s.GetEmployee(ctx, id)
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListSuppliers(ctx context.Context) ([]Supplier, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, phone, COALESCE(email, ''), category, status, created_at
    FROM suppliers
    ORDER BY created_at
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []Supplier
	for rows.Next() {
		var supplier Supplier
		if err := rows.Scan(&supplier.ID, &supplier.Name, &supplier.Phone, &supplier.Email,
			&supplier.Category, &supplier.Status, &supplier.CreatedAt); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, supplier)
	}
	return suppliers, rows.Err()
}

func (s *Store) GetSupplier(ctx context.Context, id string) (Supplier, error) {
	var supplier Supplier
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, phone, COALESCE(email, ''), category, status, created_at
    FROM suppliers
    WHERE id = $1
  `, id).Scan(&supplier.ID, &supplier.Name, &supplier.Phone, &supplier.Email,
		&supplier.Category, &supplier.Status, &supplier.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Supplier{}, ErrNotFound
		}
		return Supplier{}, err
	}
	return supplier, nil
}

func (s *Store) CreateSupplier(ctx context.Context, supplier Supplier) (Supplier, error) {
	if supplier.Status == "" {
		supplier.Status = StatusActive
	}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO suppliers (name, phone, email, category, status)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id, created_at
  `, supplier.Name, supplier.Phone, nullIfEmpty(supplier.Email), supplier.Category, supplier.Status).
		Scan(&supplier.ID, &supplier.CreatedAt)
	if err != nil {
		return Supplier{}, err
	}
	return supplier, nil
}

func (s *Store) UpdateSupplier(ctx context.Context, id string, update SupplierUpdate) (Supplier, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE suppliers SET
      name = COALESCE($2, name),
      phone = COALESCE($3, phone),
      email = COALESCE($4, email),
      category = COALESCE($5, category),
      status = COALESCE($6, status)
    WHERE id = $1
  `, id, update.Name, update.Phone, update.Email, update.Category, update.Status)
	if err != nil {
		return Supplier{}, err
	}
	if tag.RowsAffected() == 0 {
		return Supplier{}, ErrNotFound
	}
	return s.GetSupplier(ctx, id)
}

func (s *Store) DeleteSupplier(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM suppliers WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
