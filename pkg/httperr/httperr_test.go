package httperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/errormail/pkg/httperr"
)

func TestHTTPError(t *testing.T) {
	t.Parallel()

	cause := errors.New("row missing")
	err := httperr.NotFound("order not found", httperr.WithError(cause))

	assert.Equal(t, "order not found", err.Error())
	assert.Equal(t, http.StatusNotFound, err.StatusCode())
	assert.ErrorIs(t, err, cause)
}

func TestHTTPError_EmptyMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Forbidden", httperr.Forbidden("").Error())
}

func TestAs(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("handler: %w", httperr.BadRequest("bad id"))
	got := httperr.As(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, http.StatusBadRequest, got.Code)

	assert.Nil(t, httperr.As(errors.New("plain")))
	assert.Nil(t, httperr.As(nil))
}

func TestWrite(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	httperr.Write(rec, httperr.NotFound("no such page"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "no such page")

	rec = httptest.NewRecorder()
	httperr.Write(rec, errors.New("dsn=postgres://secret"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")

	rec = httptest.NewRecorder()
	httperr.Write(rec, httperr.Internal("db down"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
