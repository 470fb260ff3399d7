package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-devnet-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc.def", "abc.def", true},
		{"bearer abc", "abc", true},
		{"Bearer ", "", false},
		{"Bearer", "", false},
		{"Basic abc", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		token, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.GET("/x", handlers...)
	return r
}

func TestErrorHandler(t *testing.T) {
	t.Run("renders the field map of an AppError", func(t *testing.T) {
		r := newEngine(func(c *gin.Context) {
			c.Error(apperror.NotFound("profile", "There is no profile for this user"))
		})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"profile":"There is no profile for this user"}`, rec.Body.String())
	})

	t.Run("hides plain errors behind a 500", func(t *testing.T) {
		r := newEngine(func(c *gin.Context) {
			c.Error(errors.New("pq: relation does not exist"))
		})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "relation")
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware("https://devnet.example/", true))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/x", nil)
		req.Header.Set("Origin", origin)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec := preflight("https://devnet.example")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://devnet.example", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = preflight("http://localhost:3000")
	assert.Equal(t, http.StatusForbidden, rec.Code, "dev origins are refused in release mode")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
