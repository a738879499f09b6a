package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Kind enumerates the driver implementations this deployment knows about.
type Kind string

const (
	KindStripe Kind = "stripe"
	KindFake   Kind = "fake"
)

// PaymentGateway is one configured provider integration. Rows are created and
// edited by administrators; this core only selects and reads them.
type PaymentGateway struct {
	ID        snowflake.ID   `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:text;not null"`
	Slug      string         `json:"slug" gorm:"type:text;not null;uniqueIndex:ux_payment_gateways_slug"`
	Driver    string         `json:"driver" gorm:"type:text;not null"`
	IsActive  bool           `json:"is_active" gorm:"not null;default:false"`
	IsDefault bool           `json:"is_default" gorm:"not null;default:false"`
	Config    datatypes.JSON `json:"config" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"not null"`
}

func (PaymentGateway) TableName() string { return "payment_gateways" }

// Kind resolves the declared driver identity, falling back to the slug.
// Admin rows predating the driver column only carry a slug.
func (g *PaymentGateway) Kind() (Kind, error) {
	for _, raw := range []string{g.Driver, g.Slug} {
		switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
		case KindStripe:
			return KindStripe, nil
		case KindFake:
			return KindFake, nil
		}
	}
	identity := g.Driver
	if strings.TrimSpace(identity) == "" {
		identity = g.Slug
	}
	return "", &DriverNotFoundError{Driver: identity}
}
