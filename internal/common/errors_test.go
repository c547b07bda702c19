package common

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusOK, HTTPStatusFromError(nil))
	assert.Equal(t, http.StatusNotFound, HTTPStatusFromError(ErrNotFound))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatusFromError(ErrUnauthorized))
	assert.Equal(t, http.StatusBadRequest, HTTPStatusFromError(ErrBadRequest))
	assert.Equal(t, http.StatusBadRequest, HTTPStatusFromError(ErrValidation))
	assert.Equal(t, http.StatusConflict, HTTPStatusFromError(ErrConflict))

	// Integrity faults are server-side problems, not client errors.
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusFromError(ErrIntegrity))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusFromError(fmt.Errorf("boom")))
}

func TestHTTPStatusFromWrappedError(t *testing.T) {
	wrapped := Errorf("challenge %s: %w", "c1", ErrNotFound)
	assert.Equal(t, http.StatusNotFound, HTTPStatusFromError(wrapped))

	doubly := fmt.Errorf("outer: %w", wrapped)
	assert.Equal(t, http.StatusNotFound, HTTPStatusFromError(doubly))
}
