package service

import (
	"errors"

	"github.com/avvvet/cardcraft-services/internal/card"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrAlreadyExists   = errors.New("already exists")
	ErrRateLimited     = errors.New("rate limited")
	ErrPaymentRequired = errors.New("payment required")
	ErrPremiumLocked   = errors.New("premium template requires a paid order")

	// ErrMalformedDesigns is the card package error, so callers can match
	// either name.
	ErrMalformedDesigns = card.ErrMalformedDesigns
)
