// Package middleware provides the gin middleware shared by all routes.
package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"showsync/internal/auth"
	"showsync/internal/models"
	"showsync/pkg/logger"
)

// AccountIDKey is the context key under which RequireAuth stores the
// authenticated account identifier.
const AccountIDKey = "accountID"

// CORS allows cross-origin calls from any origin.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

type gzipResponseWriter struct {
	gin.ResponseWriter
	gzipWriter *gzip.Writer
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	return w.gzipWriter.Write(data)
}

func (w *gzipResponseWriter) WriteString(s string) (int, error) {
	return w.gzipWriter.Write([]byte(s))
}

// Gzip compresses responses for clients that accept it.
func Gzip(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		c.Header("Content-Encoding", "gzip")
		c.Header("Vary", "Accept-Encoding")

		gzipWriter := gzip.NewWriter(c.Writer)
		defer func() {
			if err := gzipWriter.Close(); err != nil {
				log.Errorf("[Middleware] failed to close gzip writer: %v", err)
			}
		}()

		c.Writer = &gzipResponseWriter{ResponseWriter: c.Writer, gzipWriter: gzipWriter}
		c.Next()
	}
}

// RequireAuth validates the Authorization bearer token and stores the
// account identifier in the request context. Missing or rejected tokens
// abort with 401 so clients can prompt re-authentication.
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.APIError{Message: "missing bearer token"})
			return
		}

		accountID, err := auth.ParseToken(jwtSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.APIError{Message: "invalid bearer token"})
			return
		}

		c.Set(AccountIDKey, accountID)
		c.Next()
	}
}
