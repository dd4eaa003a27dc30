package user

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiddlewareRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/load", LoadUserMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUserID(c))
	})
	r.GET("/ensure", EnsureUserCookieMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUserID(c))
	})
	return r
}

func TestLoadUserMiddlewareRejectsMissingCookie(t *testing.T) {
	r := newMiddlewareRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/load", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoadUserMiddlewareRejectsInvalidUUID(t *testing.T) {
	r := newMiddlewareRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/load", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-uuid"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoadUserMiddlewarePassesValidCookie(t *testing.T) {
	r := newMiddlewareRouter()
	id, err := CreateProvisionalUser()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/load", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: id})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, w.Body.String())
}

func TestEnsureUserCookieMiddlewareIssuesCookie(t *testing.T) {
	r := newMiddlewareRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ensure", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	issued := w.Body.String()
	assert.True(t, IsValidUUID(issued))

	var found bool
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == CookieName {
			found = true
			assert.Equal(t, issued, cookie.Value)
		}
	}
	assert.True(t, found)
}
