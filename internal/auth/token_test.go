package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAccessToken(t *testing.T) {
	t.Run("FromCookie", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})

		assert.Equal(t, "cookie-token", ExtractAccessToken(r))
	})

	t.Run("CookieWinsOverHeader", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})
		r.Header.Set("Authorization", "Bearer header-token")

		assert.Equal(t, "cookie-token", ExtractAccessToken(r))
	})

	t.Run("FromBearerHeader", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer header-token")

		assert.Equal(t, "header-token", ExtractAccessToken(r))
	})

	t.Run("EmptyCookieFallsBack", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: "access_token", Value: ""})
		r.Header.Set("Authorization", "Bearer header-token")

		assert.Equal(t, "header-token", ExtractAccessToken(r))
	})

	t.Run("NoToken", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		assert.Empty(t, ExtractAccessToken(r))

		r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		assert.Empty(t, ExtractAccessToken(r))
	})
}
