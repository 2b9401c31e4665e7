package gormstore

import (
	"errors"

	"gorm.io/gorm"

	"github.com/agate-ltd/agency-crm/internal/repository"
)

// New builds gorm-backed repositories. The db should be opened with TranslateError
// so unique violations surface as gorm.ErrDuplicatedKey.
func New(db *gorm.DB) repository.Repositories {
	return repository.Repositories{
		Staff:     &staffRepository{db: db},
		Clients:   &clientRepository{db: db},
		Campaigns: &campaignRepository{db: db},
		Contacts:  &contactRepository{db: db},
	}
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repository.ErrDuplicate
	default:
		return err
	}
}

func page(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 9
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
