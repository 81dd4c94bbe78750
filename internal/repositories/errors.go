package repositories

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the addressed row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a unique or foreign key constraint.
	ErrConflict = errors.New("constraint violation")
)

func notFound(entity string) error {
	return errors.Wrap(ErrNotFound, entity)
}

// translate maps gorm errors onto the package sentinels.
func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound(op)
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return errors.Wrapf(ErrConflict, "%s: %v", op, err)
	default:
		return errors.Wrap(err, op)
	}
}
