package persistence

import (
	"errors"
	"fmt"

	"github.com/jewelry-erp/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps driver errors to domain errors. The database is opened
// with TranslateError so constraint violations arrive as gorm sentinels.
func translateError(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewNotFoundError(entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewConflictError("ALREADY_EXISTS", entity+" already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewValidationError("INVALID_REFERENCE", entity+" references a record that does not exist")
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return shared.NewValidationError("CONSTRAINT_VIOLATION", entity+" violates a data constraint")
	default:
		return fmt.Errorf("%s: %w", entity, err)
	}
}

// translateDeleteError is translateError for hard deletes, where a foreign
// key violation means the row is still referenced.
func translateDeleteError(err error, entity string) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return shared.NewConflictError("IN_USE", entity+" is still referenced by other records")
	}
	return translateError(err, entity)
}
