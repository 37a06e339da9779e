package domain

import "github.com/pkg/errors"

var (
	ErrLoanNotFound   = errors.New("loan not found")
	ErrInvalidCatalog = errors.New("invalid loan catalog")
	ErrInvalidQuote   = errors.New("invalid quote")
)
