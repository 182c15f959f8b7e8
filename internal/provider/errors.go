package provider

import "errors"

var (
	ErrNotFound    = errors.New("no chain data for this symbol")
	ErrRateLimited = errors.New("rate limited by chain API")
	ErrAuthFailed  = errors.New("authentication failed")
)
