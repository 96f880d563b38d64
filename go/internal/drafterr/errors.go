package drafterr

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/lib/pq"
)

var (
	// ErrValidation is returned for malformed input at an API boundary
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when no player matches the season and ID
	ErrNotFound = errors.New("not found")
	// ErrInvalidSale is returned when a sale is vetoed or lost a race
	ErrInvalidSale = errors.New("invalid sale")
	// ErrConcurrentModification is returned when a record changed between read and write
	ErrConcurrentModification = errors.New("concurrent modification")
	// ErrStoreUnavailable is returned when the record store cannot be reached
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrBroadcastUnavailable is returned when the broadcast channel is disconnected
	ErrBroadcastUnavailable = errors.New("broadcast unavailable")
)

// InvalidSaleError carries the reason a sale was refused.
type InvalidSaleError struct {
	Reason string
}

func (e *InvalidSaleError) Error() string {
	return fmt.Sprintf("invalid sale: %s", e.Reason)
}

func (e *InvalidSaleError) Is(target error) bool {
	return target == ErrInvalidSale
}

// InvalidSale builds an InvalidSaleError.
func InvalidSale(format string, args ...any) error {
	return &InvalidSaleError{Reason: fmt.Sprintf(format, args...)}
}

// Validation wraps a message as ErrValidation.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Store classifies a driver error. Connection-level failures become
// ErrStoreUnavailable, everything else is returned unchanged.
func Store(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	if isUnavailable(err) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}

func isUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// class 08 is connection exception, 57P is operator intervention
		switch pqErr.Code.Class() {
		case "08", "57":
			return true
		}
	}
	return false
}

// HTTPStatus maps an error to a response code.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidSale), errors.Is(err, ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, ErrStoreUnavailable), errors.Is(err, ErrBroadcastUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Code returns a stable machine-readable code for an error.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidSale):
		return "invalid_sale"
	case errors.Is(err, ErrConcurrentModification):
		return "concurrent_modification"
	case errors.Is(err, ErrStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, ErrBroadcastUnavailable):
		return "broadcast_unavailable"
	}
	return "internal_error"
}
