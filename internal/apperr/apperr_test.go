package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
		code   string
	}{
		{BadRequest(CodeInvalidHandle, "bad"), http.StatusBadRequest, "INVALID_HANDLE"},
		{Unauthorized(CodeBadCredentials, "nope"), http.StatusUnauthorized, "BAD_CREDENTIALS"},
		{Forbidden(CodeAdminUnavailable, "gone"), http.StatusForbidden, "ADMIN_UNAVAILABLE"},
		{Conflict(CodeHandleTaken, "taken"), http.StatusConflict, "HANDLE_TAKEN"},
		{NotFound("missing"), http.StatusNotFound, "NOT_FOUND"},
		{Internal("boom", nil), http.StatusInternalServerError, "SERVER_ERROR"},
	}
	for _, c := range cases {
		assert.Equal(t, c.status, c.err.Status, c.code)
		assert.Equal(t, c.code, c.err.Code)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("db down")
	e := Internal("query failed", cause)
	assert.ErrorIs(t, e, cause)
	assert.Equal(t, "query failed", e.Error())
}
