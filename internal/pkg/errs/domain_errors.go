package errs

import "errors"

// Sentinel errors shared across the usecase layers
var (
	// Drop errors
	ErrDropNotFound  = errors.New("drop not found")
	ErrAlreadySold   = errors.New("drop already sold")
	ErrLockedByOther = errors.New("drop locked by another viewer")

	// Viewer identity errors
	ErrMissingViewer = errors.New("viewer identity missing")

	// Operation errors
	ErrStoreOperationFailed = errors.New("state store operation failed")
)
