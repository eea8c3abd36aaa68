package service

import "errors"

var (
	// ErrInvalidInput es el unico error que produce el motor: datos faltantes o fuera de rango.
	ErrInvalidInput      = errors.New("invalid input")
	ErrCharacterNotFound = errors.New("character not found")
	ErrRateLimited       = errors.New("rate limited")
)
