package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("Name is required"), http.StatusBadRequest},
		{"conflict", Conflict("Email already in use"), http.StatusBadRequest},
		{"malformed id", MalformedID("Invalid user ID"), http.StatusBadRequest},
		{"not found", NotFound("User not found"), http.StatusNotFound},
		{"store fault", Store(errors.New("connection refused")), http.StatusInternalServerError},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped classified", fmt.Errorf("update: %w", NotFound("User not found")), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}

func TestStoreKeepsCause(t *testing.T) {
	cause := errors.New("driver: bad connection")
	err := Store(cause)
	assert.Equal(t, "driver: bad connection", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindStore, KindOf(err))
}
