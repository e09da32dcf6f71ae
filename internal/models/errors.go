package models

import "errors"

var (
	ErrUnknownModel        = errors.New("unknown model")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrEmptyResponse       = errors.New("empty response from provider")
)
