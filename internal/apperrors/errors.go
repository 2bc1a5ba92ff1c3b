package apperrors

import "errors"

var (
	ErrSessionNotFound  = errors.New("session not found or expired")
	ErrDocumentNotFound = errors.New("specification document not found")
	ErrPositionNotFound = errors.New("position not found in document")
	ErrCatalogLoad      = errors.New("catalog could not be loaded")
	ErrSessionNotReady  = errors.New("session has unanswered questions for this trade")
)
