package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*StatusResponse, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateRequest) (*StatusResponse, error)
	Remove(ctx context.Context, id snowflake.ID) error
	BulkDestroy(ctx context.Context, ids []snowflake.ID) error
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
}

type CreateRequest struct {
	Name      string  `json:"name"`
	Color     *string `json:"color,omitempty"`
	IsDefault bool    `json:"is_default"`
	IsActive  *bool   `json:"is_active,omitempty"`
	Position  *int    `json:"position,omitempty"`
}

// UpdateRequest applies only the fields that are present; nil leaves the
// stored value unchanged.
type UpdateRequest struct {
	Name      *string `json:"name,omitempty"`
	Color     *string `json:"color,omitempty"`
	IsDefault *bool   `json:"is_default,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
	Position  *int    `json:"position,omitempty"`
}

// StatusResponse surfaces the id as a string for numeric-precision safety
// in JavaScript clients.
type StatusResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Color     string `json:"color"`
	IsDefault bool   `json:"is_default"`
	IsActive  bool   `json:"is_active"`
	Position  int    `json:"position"`
}

type ListRequest struct {
	Page    int `form:"page,default=1"`
	PerPage int `form:"per_page,default=20"`
}

type ListResponse struct {
	Items      []StatusResponse `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	TotalPages int              `json:"total_pages"`
}
