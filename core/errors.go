package core

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInputNotFound    = errors.New("input not found")
	ErrGenerationFailed = errors.New("generation failed")
	ErrConfiguration    = errors.New("configuration error")
)
