package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{Authorization("denied"), http.StatusForbidden},
		{NotFound("gone"), http.StatusNotFound},
		{Validation("bad input"), http.StatusBadRequest},
		{ExternalClient("provider says no", nil), http.StatusBadRequest},
		{ExternalUnknown("an error occurred", nil), http.StatusInternalServerError},
		{Conflict("duplicate"), http.StatusConflict},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, HTTPStatus(tc.err), "for %v", tc.err)
	}
}

func TestAsSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("looking up payment: %w", NotFound("payment not found"))

	e, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KindNotFound, e.Kind)
	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(wrapped, KindValidation))
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := ExternalUnknown("an error occurred", cause)
	assert.Equal(t, "an error occurred: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
}
