package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestIsMatchesByKind(t *testing.T) {
	c := qt.New(t)

	err := NotFoundf("Post")
	c.Assert(errors.Is(err, ErrNotFound), qt.IsTrue)
	c.Assert(errors.Is(err, ErrValidation), qt.IsFalse)
	c.Assert(err.Message, qt.Equals, "Post not found")

	wrapped := fmt.Errorf("loading: %w", err)
	c.Assert(errors.Is(wrapped, ErrNotFound), qt.IsTrue)
	c.Assert(KindOf(wrapped), qt.Equals, NotFound)
}

func TestFromClassifiesUnknownAsInternal(t *testing.T) {
	c := qt.New(t)

	cause := errors.New("connection refused")
	e := From(cause)
	c.Assert(e.Kind, qt.Equals, InternalError)
	c.Assert(e.Message, qt.Equals, "Internal server error")
	c.Assert(errors.Is(e, cause), qt.IsTrue)
	c.Assert(From(nil) == nil, qt.IsTrue)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{ValidationError, http.StatusBadRequest},
		{DuplicateUser, http.StatusBadRequest},
		{InvalidCredential, http.StatusBadRequest},
		{Unauthorized, http.StatusUnauthorized},
		{Suspended, http.StatusForbidden},
		{Forbidden, http.StatusForbidden},
		{NotFound, http.StatusNotFound},
		{MethodNotAllowed, http.StatusMethodNotAllowed},
		{InvalidTransition, http.StatusConflict},
		{InternalError, http.StatusInternalServerError},
		{Kind("whatever"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			qt.New(t).Assert(HTTPStatus(tt.kind), qt.Equals, tt.want)
		})
	}
}
