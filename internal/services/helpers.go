package services

import (
	"errors"

	"smartrental/internal/repositories"
)

// Bounds for admin listings.
const (
	defaultListLimit = 50
	maxListLimit     = 200
)

func isNotFound(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}
