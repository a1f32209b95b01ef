package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"quill/pkg/utils"
)

// Page is a 1-based page request.
type Page struct {
	Page     int
	PageSize int
}

func (p Page) offset() int {
	return (p.Page - 1) * p.PageSize
}

func requireDB(db *gorm.DB) error {
	if db == nil {
		return utils.ErrDatabaseUnavailable
	}
	return nil
}

// translate maps driver level failures onto the shared sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", utils.ErrConflict, err)
	}
	return err
}
