package utils

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidPage            = errors.New("invalid page parameter")
	ErrInvalidPageSize        = errors.New("invalid page size parameter")
	ErrDatabaseError          = errors.New("database error")
	ErrDatabaseUnavailable    = errors.New("database is not configured")
	ErrConflict               = errors.New("resource already exists")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrEmailAlreadyExists     = errors.New("email already exists")
	ErrAccountNotFound        = errors.New("account not found")
	ErrDocumentNotFound       = errors.New("document not found")
	ErrFolderNotFound         = errors.New("folder not found")
	ErrPersonaNotFound        = errors.New("persona not found")
	ErrKeyMessageNotFound     = errors.New("key message not found")
	ErrSelectionNotFound      = errors.New("selection not found in content")
	ErrUnsupportedFormat      = errors.New("unsupported export format")
	ErrGuestLimitReached      = errors.New("guest limit reached")
	ErrUnexpectedBehaviorOfAI = errors.New("unexpected response from language model")
	ErrPaymentsUnavailable    = errors.New("payments are not configured")
	ErrUnknownPlan            = errors.New("unknown plan")
	ErrNoBillingCustomer      = errors.New("no billing customer for account")
	ErrExportNotFound         = errors.New("export not found")
)
