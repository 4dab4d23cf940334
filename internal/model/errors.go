package model

import "errors"

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrImportFormat = errors.New("invalid import format")
	ErrPersistence  = errors.New("persistence failure")
)
