package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	var seen string
	router := gin.New()
	router.Use(LoggingMiddleware())
	router.GET("/admin/categories", func(c *gin.Context) {
		seen = c.GetString("request_id")
		c.Status(http.StatusBadGateway)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/categories", nil))

	require.Len(t, seen, 8)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))

	out := buf.String()
	assert.Contains(t, out, `"request_id":"`+seen+`"`)
	assert.Contains(t, out, `"path":"/admin/categories"`)
	assert.Contains(t, out, `"status":502`)
	assert.Contains(t, out, `"level":"warn"`)
}
