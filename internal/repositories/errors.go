package repositories

import (
	"errors"
	"fmt"

	"recipebox/internal/apperr"

	"gorm.io/gorm"
)

// translate maps GORM errors onto the application kinds. what names the
// entity for the client message, op the failed operation for logs.
func translate(err error, what, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound("%s not found", what)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict("%s already exists", what)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperr.NotFound("referenced record for %s not found", what)
	default:
		return fmt.Errorf("failed to %s %s: %w", op, what, err)
	}
}
