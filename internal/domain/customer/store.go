package customer

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

const customerColumns = `
    id, name, COALESCE(email, ''), phone, COALESCE(address, ''), COALESCE(city, ''),
    COALESCE(region, ''), customer_type, status, registration_date, last_purchase_date,
    total_purchases, total_amount, COALESCE(preferred_delivery_time, ''),
    COALESCE(price_per_liter, 0), COALESCE(notes, '')`

func scanCustomer(row pgx.Row) (Customer, error) {
	var customer Customer
	err := row.Scan(&customer.ID, &customer.Name, &customer.Email, &customer.Phone,
		&customer.Address, &customer.City, &customer.Region, &customer.CustomerType,
		&customer.Status, &customer.RegistrationDate, &customer.LastPurchaseDate,
		&customer.TotalPurchases, &customer.TotalAmount, &customer.PreferredDeliveryTime,
		&customer.PricePerLiter, &customer.Notes)
	return customer, err
}

func (s *Store) ListCustomers(ctx context.Context) ([]Customer, error) {
	rows, err := s.DB.Query(ctx, "SELECT"+customerColumns+" FROM customers ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

func (s *Store) GetCustomer(ctx context.Context, id string) (Customer, error) {
	customer, err := scanCustomer(s.DB.QueryRow(ctx, "SELECT"+customerColumns+" FROM customers WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Customer{}, ErrNotFound
		}
		return Customer{}, err
	}
	return customer, nil
}

func (s *Store) CreateCustomer(ctx context.Context, customer Customer) (Customer, error) {
	if customer.Status == "" {
		customer.Status = StatusActive
	}
	if customer.RegistrationDate.IsZero() {
		customer.RegistrationDate = time.Now().UTC()
	}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO customers
      (name, email, phone, address, city, region, customer_type, status, registration_date,
       preferred_delivery_time, price_per_liter, notes)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    RETURNING id
  `, customer.Name, nullIfEmpty(customer.Email), customer.Phone, nullIfEmpty(customer.Address),
		nullIfEmpty(customer.City), nullIfEmpty(customer.Region), customer.CustomerType,
		customer.Status, customer.RegistrationDate, nullIfEmpty(customer.PreferredDeliveryTime),
		customer.PricePerLiter, nullIfEmpty(customer.Notes)).Scan(&customer.ID)
	if err != nil {
		return Customer{}, err
	}
	return customer, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, id string, update CustomerUpdate) (Customer, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE customers SET
      name = COALESCE($2, name),
      email = COALESCE($3, email),
      phone = COALESCE($4, phone),
      address = COALESCE($5, address),
      city = COALESCE($6, city),
      region = COALESCE($7, region),
      customer_type = COALESCE($8, customer_type),
      status = COALESCE($9, status),
      preferred_delivery_time = COALESCE($10, preferred_delivery_time),
      price_per_liter = COALESCE($11, price_per_liter),
      notes = COALESCE($12, notes)
    WHERE id = $1
  `, id, update.Name, update.Email, update.Phone, update.Address, update.City,
		update.Region, update.CustomerType, update.Status, update.PreferredDeliveryTime,
		update.PricePerLiter, update.Notes)
	if err != nil {
		return Customer{}, err
	}
	if tag.RowsAffected() == 0 {
		return Customer{}, ErrNotFound
	}
	return s.GetCustomer(ctx, id)
}

func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ApplySaleRollup(ctx context.Context, customerID string, amount float64, date time.Time) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE customers SET
      total_purchases = total_purchases + 1,
      total_amount = total_amount + $2,
      last_purchase_date = $3
    WHERE id = $1
  `, customerID, amount, date)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) CreateSale(ctx context.Context, sale MilkSale) (MilkSale, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO milk_sales
      (customer_id, customer_name, date, quantity, price_per_liter, total_amount,
       payment_method, payment_status, delivery_method, delivery_address, notes)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    RETURNING id
  `, sale.CustomerID, sale.CustomerName, sale.Date, sale.Quantity, sale.PricePerLiter,
		sale.TotalAmount, sale.PaymentMethod, sale.PaymentStatus, sale.DeliveryMethod,
		nullIfEmpty(sale.DeliveryAddress), nullIfEmpty(sale.Notes)).Scan(&sale.ID)
	if err != nil {
		return MilkSale{}, err
	}
	return sale, nil
}

func (s *Store) ListSales(ctx context.Context, customerID string) ([]MilkSale, error) {
	query := `
    SELECT id, customer_id, customer_name, date, quantity, price_per_liter, total_amount,
           payment_method, payment_status, delivery_method, COALESCE(delivery_address, ''), COALESCE(notes, '')
    FROM milk_sales`
	var args []any
	if customerID != "" {
		query += " WHERE customer_id = $1"
		args = append(args, customerID)
	}
	query += " ORDER BY date, id"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []MilkSale
	for rows.Next() {
		var sale MilkSale
		if err := rows.Scan(&sale.ID, &sale.CustomerID, &sale.CustomerName, &sale.Date,
			&sale.Quantity, &sale.PricePerLiter, &sale.TotalAmount, &sale.PaymentMethod,
			&sale.PaymentStatus, &sale.DeliveryMethod, &sale.DeliveryAddress, &sale.Notes); err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
