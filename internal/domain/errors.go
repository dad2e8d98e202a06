package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound           = errors.New("not found")
	ErrCorruptRecord      = errors.New("corrupt record")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("wrong credentials")
	ErrNotConfirmed       = errors.New("action not confirmed")
	ErrNoFavorites        = errors.New("no favorites saved")
	ErrExportUnavailable  = errors.New("document exporter unavailable")
)
