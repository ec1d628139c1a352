package repository

import (
	"errors"

	"github.com/JosueLDjota/ERP-Modern/internal/db"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("duplicate value")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// IsDuplicate reports whether err stems from a unique constraint.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate) || db.IsUniqueViolation(err)
}
