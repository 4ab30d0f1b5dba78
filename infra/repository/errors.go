package repository

import (
	"errors"

	"github.com/securebank/ledger/pkg/domain"
	"gorm.io/gorm"
)

// mapErr translates storage errors into the domain taxonomy so callers never
// see gorm internals.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrAlreadyExists
	default:
		return err
	}
}
