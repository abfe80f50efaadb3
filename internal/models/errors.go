package models

import (
	"errors"
)

var (
	ErrProviderDisabled = errors.New("completion provider is not initialized")
	ErrEmptyCompletion  = errors.New("completion returned no choices")
	ErrUpstreamStatus   = errors.New("unexpected upstream status")
)
