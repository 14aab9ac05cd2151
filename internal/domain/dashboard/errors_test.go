package dashboard

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", ErrValidation, http.StatusBadRequest},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"data unavailable", ErrDataUnavailable, http.StatusInternalServerError},
		{"forecast failed", ErrForecastFailed, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped validation", fmt.Errorf("%w: days must be positive", ErrValidation), http.StatusBadRequest},
		{"wrapped unauthorized", fmt.Errorf("%w: token expired", ErrUnauthorized), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
