package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, BadRequest("bad").Code)
	assert.Equal(t, http.StatusNotFound, NotFound("missing").Code)
	assert.Equal(t, http.StatusTooManyRequests, TooManyRequests("slow down").Code)
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("who").Code)

	v := Validation([]string{"email must be a valid email"})
	assert.Equal(t, http.StatusBadRequest, v.Code)
	assert.Equal(t, []string{"email must be a valid email"}, v.Details)
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	assert.Equal(t, "Internal Server Error", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("loading profile: %w", NotFound("Profile with ID x not found"))

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Code)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}
