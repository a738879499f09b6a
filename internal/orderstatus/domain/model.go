package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// OrderStatus is one named stage of the fulfilment workflow. Across all
// rows at most one carries is_default, and once the taxonomy is seeded
// exactly one does; the service is the sole guardian of that invariant.
type OrderStatus struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"type:text;not null;uniqueIndex:ux_order_statuses_name"`
	Slug      string       `json:"slug" gorm:"type:text;not null;uniqueIndex:ux_order_statuses_slug"`
	Color     string       `json:"color" gorm:"type:text;not null"`
	IsDefault bool         `json:"is_default" gorm:"not null;default:false"`
	IsActive  bool         `json:"is_active" gorm:"not null;default:true"`
	Position  int          `json:"position" gorm:"not null;default:0"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null"`
}

func (OrderStatus) TableName() string { return "order_statuses" }

// DefaultColor is applied when a status is created without one.
const DefaultColor = "#6B7280"
