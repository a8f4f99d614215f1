package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateURL = errors.New("website with this URL already exists")

	// Comparison errors.
	ErrInvalidOutcome       = errors.New("winner must be one of the two compared websites")
	ErrInsufficientWebsites = errors.New("need at least two websites to compare")

	// Google Maps errors. ErrNotConfigured is raised before any network call.
	ErrNotConfigured = errors.New("google maps api key not configured")
	ErrQuotaExceeded = errors.New("google maps api quota exceeded")
)

// ServiceError is any non-quota upstream failure (bad status, transport error,
// timeout). Detail is capped at 200 chars so logs and API responses stay sane.
type ServiceError struct {
	StatusCode int // 0 when the request never completed
	Detail     string
}

func (e *ServiceError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("maps api request failed: %s", e.Detail)
	}
	return fmt.Sprintf("maps api error %d: %s", e.StatusCode, e.Detail)
}

const serviceErrorDetailMax = 200

// NewServiceError truncates detail to the cap (rune-safe, upstream bodies can
// be multi-byte); use it instead of constructing ServiceError by hand.
func NewServiceError(status int, detail string) *ServiceError {
	if rs := []rune(detail); len(rs) > serviceErrorDetailMax {
		detail = string(rs[:serviceErrorDetailMax])
	}
	return &ServiceError{StatusCode: status, Detail: detail}
}
