package errors

import "errors"

var (
	ErrEmptyAnalysisText     = errors.New("text to analyze cannot be empty")
	ErrEmptyHandle           = errors.New("handle cannot be empty")
	ErrEmptyEntityName       = errors.New("entity name cannot be empty")
	ErrUnsupportedEntityKind = errors.New("unsupported entity kind")
	ErrClassifierUnavailable = errors.New("scam classifier is unavailable")
	ErrProfileUnavailable    = errors.New("profile provider is unavailable")
	ErrCacheUnavailable      = errors.New("assessment cache store is unavailable")
)
