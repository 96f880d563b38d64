package drafterr

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestInvalidSaleIs(t *testing.T) {
	err := fmt.Errorf("failed to sell player: %w", InvalidSale("team %d is at capacity for %s", 3, "C"))

	assert.ErrorIs(t, err, ErrInvalidSale)

	var saleErr *InvalidSaleError
	assert.True(t, errors.As(err, &saleErr))
	assert.Equal(t, "team 3 is at capacity for C", saleErr.Reason)
}

func TestStoreClassification(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		unavailable bool
	}{
		{"bad conn", driver.ErrBadConn, true},
		{"connection exception", &pq.Error{Code: "08006"}, true},
		{"admin shutdown", &pq.Error{Code: "57P01"}, true},
		{"unique violation", &pq.Error{Code: "23505"}, false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Store(tt.err)
			assert.Equal(t, tt.unavailable, errors.Is(got, ErrStoreUnavailable))
		})
	}

	assert.NoError(t, Store(nil))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("bad price")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("x: %w", ErrNotFound)))
	assert.Equal(t, http.StatusConflict, HTTPStatus(InvalidSale("already sold")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrConcurrentModification))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(Store(driver.ErrBadConn)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
	assert.Equal(t, "invalid_sale", Code(InvalidSale("x")))
}
