package seed

import (
	"time"

	"github.com/bwmarrin/snowflake"
	statusdomain "github.com/gemorahq/gemora/internal/orderstatus/domain"
	"gorm.io/gorm"
)

// EnsureDefaultStatus guarantees a fresh taxonomy starts with exactly one
// default status. Existing installs are left untouched.
func EnsureDefaultStatus(conn *gorm.DB, genID *snowflake.Node) error {
	var total int64
	if err := conn.Model(&statusdomain.OrderStatus{}).Count(&total).Error; err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	now := time.Now().UTC()
	return conn.Create(&statusdomain.OrderStatus{
		ID:        genID.Generate(),
		Name:      "Pending",
		Slug:      "pending",
		Color:     statusdomain.DefaultColor,
		IsDefault: true,
		IsActive:  true,
		Position:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}).Error
}
