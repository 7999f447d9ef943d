package customer

import "time"

const (
	StatusActive    = "Active"
	StatusInactive  = "Inactive"
	StatusSuspended = "Suspended"

	PaymentStatusPaid    = "Paid"
	PaymentStatusPending = "Pending"
	PaymentStatusOverdue = "Overdue"
)

type Customer struct {
	ID                    string     `json:"id"`
	Name                  string     `json:"name"`
	Email                 string     `json:"email,omitempty"`
	Phone                 string     `json:"phone"`
	Address               string     `json:"address,omitempty"`
	City                  string     `json:"city,omitempty"`
	Region                string     `json:"region,omitempty"`
	CustomerType          string     `json:"customerType"`
	Status                string     `json:"status"`
	RegistrationDate      time.Time  `json:"registrationDate"`
	LastPurchaseDate      *time.Time `json:"lastPurchaseDate,omitempty"`
	TotalPurchases        int        `json:"totalPurchases"`
	TotalAmount           float64    `json:"totalAmount"`
	PreferredDeliveryTime string     `json:"preferredDeliveryTime,omitempty"`
	PricePerLiter         float64    `json:"pricePerLiter,omitempty"`
	Notes                 string     `json:"notes,omitempty"`
}

type CustomerUpdate struct {
	Name                  *string  `json:"name"`
	Email                 *string  `json:"email"`
	Phone                 *string  `json:"phone"`
	Address               *string  `json:"address"`
	City                  *string  `json:"city"`
	Region                *string  `json:"region"`
	CustomerType          *string  `json:"customerType"`
	Status                *string  `json:"status"`
	PreferredDeliveryTime *string  `json:"preferredDeliveryTime"`
	PricePerLiter         *float64 `json:"pricePerLiter"`
	Notes                 *string  `json:"notes"`
}

type MilkSale struct {
	ID              string    `json:"id"`
	CustomerID      string    `json:"customerId"`
	CustomerName    string    `json:"customerName"`
	Date            time.Time `json:"date"`
	Quantity        float64   `json:"quantity"`
	PricePerLiter   float64   `json:"pricePerLiter"`
	TotalAmount     float64   `json:"totalAmount"`
	PaymentMethod   string    `json:"paymentMethod"`
	PaymentStatus   string    `json:"paymentStatus"`
	DeliveryMethod  string    `json:"deliveryMethod"`
	DeliveryAddress string    `json:"deliveryAddress,omitempty"`
	Notes           string    `json:"notes,omitempty"`
}
