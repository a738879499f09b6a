package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/gemorahq/gemora/internal/orderstatus/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) List(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.OrderStatus, error) {
	var statuses []domain.OrderStatus
	err := db.WithContext(ctx).
		Order("position ASC, name ASC").
		Offset(offset).
		Limit(limit).
		Find(&statuses).Error
	if err != nil {
		return nil, err
	}
	return statuses, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.OrderStatus{}).Count(&total).Error
	return total, err
}

func (r *repo) CountExcept(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.OrderStatus{}).
		Where("id <> ?", id).
		Count(&total).Error
	return total, err
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.OrderStatus, error) {
	var status domain.OrderStatus
	err := db.WithContext(ctx).First(&status, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// FindByName matches the exact, case-sensitive name.
func (r *repo) FindByName(ctx context.Context, db *gorm.DB, name string) (*domain.OrderStatus, error) {
	var status domain.OrderStatus
	err := db.WithContext(ctx).First(&status, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *repo) SlugTaken(ctx context.Context, db *gorm.DB, slug string, excludeID snowflake.ID) (bool, error) {
	query := db.WithContext(ctx).
		Model(&domain.OrderStatus{}).
		Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, status *domain.OrderStatus) error {
	return db.WithContext(ctx).Create(status).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, status *domain.OrderStatus) error {
	return db.WithContext(ctx).Save(status).Error
}

// UnsetDefaultExcept clears is_default on every row but excludeID.
// Pass zero to clear all rows.
func (r *repo) UnsetDefaultExcept(ctx context.Context, db *gorm.DB, excludeID snowflake.ID) error {
	query := db.WithContext(ctx).
		Model(&domain.OrderStatus{}).
		Where("is_default = ?", true)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	return query.Update("is_default", false).Error
}

func (r *repo) HasDefaultWithin(ctx context.Context, db *gorm.DB, ids []snowflake.ID) (bool, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.OrderStatus{}).
		Where("id IN ?", ids).
		Where("is_default = ?", true).
		Count(&total).Error
	if err != nil {
		return false, err
	}
	return total > 0, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.OrderStatus{}, "id = ?", id).Error
}

func (r *repo) DeleteMany(ctx context.Context, db *gorm.DB, ids []snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Delete(&domain.OrderStatus{}, "id IN ?", ids)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
