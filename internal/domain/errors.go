package domain

import "errors"

var (
	ErrCoinNotFound       = errors.New("coin not found")
	ErrDuplicateCoin      = errors.New("duplicate coin id")
	ErrQuotesDisabled     = errors.New("remote quote source disabled")
	ErrSurfaceNotReady    = errors.New("drawing surface not ready")
	ErrInvalidChartConfig = errors.New("invalid chart config")
)
