package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gemorahq/gemora/internal/orderstatus/domain"
	"github.com/gemorahq/gemora/pkg/db"
	"github.com/gemorahq/gemora/pkg/slugger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("orderstatus.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

// Create inserts a new status. When the new row is flagged default, every
// other default is cleared first inside the same transaction, so no state
// with two defaults is observable outside it.
func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.StatusResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	existing, err := s.repo.FindByName(ctx, s.db, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrNameExists
	}

	now := time.Now().UTC()
	status := domain.OrderStatus{
		ID:        s.genID.Generate(),
		Name:      name,
		Color:     domain.DefaultColor,
		IsDefault: req.IsDefault,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Color != nil && strings.TrimSpace(*req.Color) != "" {
		status.Color = strings.TrimSpace(*req.Color)
	}
	if req.IsActive != nil {
		status.IsActive = *req.IsActive
	}
	if req.Position != nil {
		status.Position = *req.Position
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if status.IsDefault {
			if err := s.repo.UnsetDefaultExcept(ctx, tx, 0); err != nil {
				return err
			}
		}

		slugValue, err := s.uniqueSlug(ctx, tx, name, 0)
		if err != nil {
			return err
		}
		status.Slug = slugValue

		return s.insertWithRetry(ctx, tx, &status)
	})
	if err != nil {
		return nil, err
	}

	return toResponse(&status), nil
}

// Update applies the provided fields. The slug is regenerated only when the
// name actually changes; resubmitting the same name keeps the stored slug.
func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateRequest) (*domain.StatusResponse, error) {
	current, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}

	var newName string
	nameChanged := false
	if req.Name != nil {
		newName = strings.TrimSpace(*req.Name)
		if newName == "" {
			return nil, domain.ErrInvalidName
		}
		nameChanged = newName != current.Name
	}

	if nameChanged {
		other, err := s.repo.FindByName(ctx, s.db, newName)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, domain.ErrNameExists
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.IsDefault != nil && *req.IsDefault {
			if err := s.repo.UnsetDefaultExcept(ctx, tx, id); err != nil {
				return err
			}
		}

		if nameChanged {
			current.Name = newName
			slugValue, err := s.uniqueSlug(ctx, tx, newName, id)
			if err != nil {
				return err
			}
			current.Slug = slugValue
		}
		if req.Color != nil {
			current.Color = strings.TrimSpace(*req.Color)
		}
		if req.IsDefault != nil {
			current.IsDefault = *req.IsDefault
		}
		if req.IsActive != nil {
			current.IsActive = *req.IsActive
		}
		if req.Position != nil {
			current.Position = *req.Position
		}
		current.UpdatedAt = time.Now().UTC()

		if err := s.repo.Update(ctx, tx, current); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrNameExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toResponse(current), nil
}

// Remove deletes a status. The default status is protected while any other
// status remains; the sole remaining row may always be deleted.
func (s *Service) Remove(ctx context.Context, id snowflake.ID) error {
	current, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrNotFound
	}

	if current.IsDefault {
		others, err := s.repo.CountExcept(ctx, s.db, id)
		if err != nil {
			return err
		}
		if others > 0 {
			return domain.ErrDeleteDefault
		}
	}

	return s.repo.Delete(ctx, s.db, id)
}

// BulkDestroy deletes the whole set or nothing: a set containing the
// default status is rejected before any row is touched.
func (s *Service) BulkDestroy(ctx context.Context, ids []snowflake.ID) error {
	if len(ids) == 0 {
		return nil
	}

	containsDefault, err := s.repo.HasDefaultWithin(ctx, s.db, ids)
	if err != nil {
		return err
	}
	if containsDefault {
		return domain.ErrBulkDeleteDefault
	}

	deleted, err := s.repo.DeleteMany(ctx, s.db, ids)
	if err != nil {
		return err
	}
	s.log.Info("order statuses deleted", zap.Int64("count", deleted))
	return nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	perPage := req.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	total, err := s.repo.Count(ctx, s.db)
	if err != nil {
		return nil, err
	}

	statuses, err := s.repo.List(ctx, s.db, (page-1)*perPage, perPage)
	if err != nil {
		return nil, err
	}

	items := make([]domain.StatusResponse, 0, len(statuses))
	for i := range statuses {
		items = append(items, *toResponse(&statuses[i]))
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))

	return &domain.ListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) uniqueSlug(ctx context.Context, tx *gorm.DB, name string, excludeID snowflake.ID) (string, error) {
	return slugger.Generate(ctx, name, excludeID, func(ctx context.Context, candidate string, excludeID snowflake.ID) (bool, error) {
		return s.repo.SlugTaken(ctx, tx, candidate, excludeID)
	})
}

// insertWithRetry regenerates the slug once when the unique index trips
// under a concurrent identical-name create; a second violation means the
// name itself collided. Each attempt runs behind a savepoint (gorm's
// nested transaction) so a failed insert does not abort the outer
// transaction on postgres.
func (s *Service) insertWithRetry(ctx context.Context, tx *gorm.DB, status *domain.OrderStatus) error {
	attempt := func() error {
		return tx.Transaction(func(inner *gorm.DB) error {
			return s.repo.Create(ctx, inner, status)
		})
	}

	err := attempt()
	if err == nil {
		return nil
	}
	if !db.IsDuplicateKeyErr(err) {
		return err
	}

	slugValue, slugErr := s.uniqueSlug(ctx, tx, status.Name, 0)
	if slugErr != nil {
		return slugErr
	}
	status.Slug = slugValue

	if err := attempt(); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.ErrNameExists
		}
		return err
	}
	return nil
}

func toResponse(status *domain.OrderStatus) *domain.StatusResponse {
	return &domain.StatusResponse{
		ID:        status.ID.String(),
		Name:      status.Name,
		Slug:      status.Slug,
		Color:     status.Color,
		IsDefault: status.IsDefault,
		IsActive:  status.IsActive,
		Position:  status.Position,
	}
}
