package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Regular hair cut", "Regular hair cut"},
		{"script tag stripped", `hello <script>alert(1)</script> world`, "hello  world"},
		{"case insensitive script", `<SCRIPT src="x">bad()</SCRIPT>ok`, "ok"},
		{"event handler stripped", `<img src="x" onerror="steal()">`, `<img src="x">`},
		{"javascript scheme stripped", `<a href="javascript:alert(1)">x</a>`, `<a href="alert(1)">x</a>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeString(tt.in))
		})
	}
}

func TestSanitizeQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(SanitizeQuery())
	r.GET("/search", func(c *gin.Context) {
		c.String(http.StatusOK, c.Query("q"))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/search?q=%3Cscript%3Ealert(1)%3C/script%3Ename", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "name", w.Body.String())
}

func TestCSRF(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CSRF())
	r.POST("/action", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("bearer requests pass", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/action", nil)
		req.Header.Set("Authorization", "Bearer token")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("cookie session without csrf token rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/action", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: "session"})
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("cookie session with mismatched token rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/action", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: "session"})
		req.AddCookie(&http.Cookie{Name: CSRFCookie, Value: "aaa"})
		req.Header.Set(CSRFHeader, "bbb")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("cookie session with matching token passes", func(t *testing.T) {
		token := NewCSRFToken()
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/action", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: "session"})
		req.AddCookie(&http.Cookie{Name: CSRFCookie, Value: token})
		req.Header.Set(CSRFHeader, token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("safe methods skip the check", func(t *testing.T) {
		r2 := gin.New()
		r2.Use(CSRF())
		r2.GET("/read", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/read", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: "session"})
		r2.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
