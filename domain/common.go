package domain

import (
	"errors"
	"time"
)

const DateLayout = "2006-01-02"

var (
	MessageFailedBodyRequest  = "failed to parse request body"
	MessageFailedTokenInvalid = "failed to token invalid"
	MessageFailedGetToken     = "failed to get token"

	ErrParseUUID          = errors.New("failed to parse UUID")
	ErrTokenNotFound      = errors.New("failed to token not found")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenExpired       = errors.New("token expired")
	ErrUnauthorizedAccess = errors.New("unauthorized access")
)

// DateOf drops the time-of-day of t, keeping its calendar date in t's location.
// The result is pinned to UTC midnight so stored dates compare by value.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
