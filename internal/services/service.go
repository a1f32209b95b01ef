package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"quill/pkg/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// dbError keeps the sentinels callers act on and folds everything else into
// ErrDatabaseError.
func dbError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, utils.ErrDatabaseUnavailable), errors.Is(err, utils.ErrConflict):
		return err
	default:
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
}

func normalizePage(page, pageSize int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if page < 1 {
		return 0, 0, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return 0, 0, utils.ErrInvalidPageSize
	}
	return page, pageSize, nil
}

func parseOptionalID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed id", utils.ErrInvalidInput)
	}
	return &id, nil
}

func nowUnix() int64 {
	return time.Now().Unix()
}
