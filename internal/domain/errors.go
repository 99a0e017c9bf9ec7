package domain

import "errors"

var (
	ErrTransport         = errors.New("rate feed transport failure")
	ErrMalformedDocument = errors.New("malformed rate feed document")
	ErrCacheUnavailable  = errors.New("rate cache unavailable")
	ErrCommandFormat     = errors.New("malformed command")
	ErrRateNotFound      = errors.New("rate not found")
)
