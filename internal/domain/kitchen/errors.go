package kitchen

import "errors"

// Domain errors for kitchens and storage locations
var (
	ErrNotFound          = errors.New("kitchen not found")
	ErrInvalidName       = errors.New("name cannot be empty")
	ErrLocationNotFound  = errors.New("storage location not found")
	ErrLocationNameTaken = errors.New("storage location name already exists in this kitchen")
)
