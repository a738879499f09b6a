package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context, db *gorm.DB, offset, limit int) ([]OrderStatus, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	CountExcept(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*OrderStatus, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*OrderStatus, error)
	SlugTaken(ctx context.Context, db *gorm.DB, slug string, excludeID snowflake.ID) (bool, error)
	Create(ctx context.Context, db *gorm.DB, status *OrderStatus) error
	Update(ctx context.Context, db *gorm.DB, status *OrderStatus) error
	UnsetDefaultExcept(ctx context.Context, db *gorm.DB, excludeID snowflake.ID) error
	HasDefaultWithin(ctx context.Context, db *gorm.DB, ids []snowflake.ID) (bool, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	DeleteMany(ctx context.Context, db *gorm.DB, ids []snowflake.ID) (int64, error)
}
