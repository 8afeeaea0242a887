package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noorfashion/backend/internal/interfaces/http/dto"
)

// BodyLimit caps request body size. Declared oversize requests are
// rejected up front; streaming bodies are wrapped so reads past the
// limit fail.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeRequestTooLarge,
					"Request body exceeds maximum allowed size", GetRequestID(c)))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
