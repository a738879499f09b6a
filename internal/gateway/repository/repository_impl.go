package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/gemorahq/gemora/internal/gateway/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

// FindActive returns active gateways with the default flag sorting first,
// so the caller can take the head of the slice.
func (r *repo) FindActive(ctx context.Context, db *gorm.DB) ([]domain.PaymentGateway, error) {
	var gateways []domain.PaymentGateway
	err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("is_default DESC, id ASC").
		Find(&gateways).Error
	if err != nil {
		return nil, err
	}
	return gateways, nil
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.PaymentGateway, error) {
	var gateway domain.PaymentGateway
	err := db.WithContext(ctx).
		Where("slug = ?", strings.ToLower(strings.TrimSpace(slug))).
		First(&gateway).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &gateway, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.PaymentGateway, error) {
	var gateways []domain.PaymentGateway
	err := db.WithContext(ctx).
		Order("is_default DESC, slug ASC").
		Find(&gateways).Error
	if err != nil {
		return nil, err
	}
	return gateways, nil
}
