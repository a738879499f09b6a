package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Order is owned by the commerce layer; this core only reads it.
type Order struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	Reference   string       `json:"reference" gorm:"type:text;not null"`
	TotalAmount float64      `json:"total_amount" gorm:"type:numeric(14,2);not null"`
	Currency    string       `json:"currency" gorm:"type:text"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null"`
}

func (Order) TableName() string { return "orders" }

// Payment tracks the provider-side intent for one order.
type Payment struct {
	ID                snowflake.ID `json:"id" gorm:"primaryKey"`
	OrderID           snowflake.ID `json:"order_id" gorm:"not null;index"`
	GatewayID         snowflake.ID `json:"gateway_id" gorm:"not null"`
	ProviderReference string       `json:"provider_reference" gorm:"type:text"`
	Status            string       `json:"status" gorm:"type:text;not null"`
	CreatedAt         time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt         time.Time    `json:"updated_at" gorm:"not null"`
}

func (Payment) TableName() string { return "payments" }

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

var ErrOrderNotFound = errors.New("order not found")

type Repository interface {
	FindOrder(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)
	FindPaymentByOrder(ctx context.Context, db *gorm.DB, orderID snowflake.ID) (*Payment, error)
	SavePayment(ctx context.Context, db *gorm.DB, payment *Payment) error
}
