package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidrq/proyecto-blog/internal/apperr"
	"github.com/davidrq/proyecto-blog/internal/token"
)

const testSecret = "test-secret"

func invoke(t *testing.T, authHeader string) (error, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/articulos", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := RequireToken(token.NewManager(testSecret, time.Hour))
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return handler(c), c
}

func kindOf(t *testing.T, err error) apperr.Kind {
	t.Helper()
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae), "expected *apperr.Error, got %v", err)
	return ae.Kind
}

func TestRequireToken_MissingHeader(t *testing.T) {
	err, _ := invoke(t, "")
	assert.Equal(t, apperr.KindForbidden, kindOf(t, err))
}

func TestRequireToken_WrongScheme(t *testing.T) {
	err, _ := invoke(t, "Basic abc123")
	assert.Equal(t, apperr.KindForbidden, kindOf(t, err))
}

func TestRequireToken_InvalidSignature(t *testing.T) {
	signed, serr := token.NewManager("otro-secreto", time.Hour).Issue(9)
	require.NoError(t, serr)

	err, _ := invoke(t, "Bearer "+signed)
	assert.Equal(t, apperr.KindUnauthorized, kindOf(t, err))
}

func TestRequireToken_Expired(t *testing.T) {
	signed, serr := token.NewManager(testSecret, time.Hour).IssueWithTTL(9, -time.Minute)
	require.NoError(t, serr)

	err, _ := invoke(t, "Bearer "+signed)
	assert.Equal(t, apperr.KindUnauthorized, kindOf(t, err))
}

func TestRequireToken_Valid(t *testing.T) {
	signed, serr := token.NewManager(testSecret, time.Hour).Issue(9)
	require.NoError(t, serr)

	err, c := invoke(t, "Bearer "+signed)
	require.NoError(t, err)

	id, ok := UserID(c)
	require.True(t, ok)
	assert.Equal(t, int64(9), id)
}
