package domain

import "errors"

var (
	ErrNotFound    = errors.New("order status not found")
	ErrInvalidName = errors.New("order status name is required")

	// Conflict errors carry messages suitable for direct display.
	ErrNameExists        = errors.New("an order status with this name already exists")
	ErrDeleteDefault     = errors.New("cannot delete the default status, assign another default first")
	ErrBulkDeleteDefault = errors.New("cannot delete the selected statuses, the selection contains the default status")
)
