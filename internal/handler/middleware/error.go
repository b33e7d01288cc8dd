package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"parking-core/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders errors that handlers attached with c.Error but did
// not write. Public errors carry a prepared httperr.Response; anything else
// is classified by its kind.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		for i := len(c.Errors) - 1; i >= 0; i-- {
			if resp, ok := c.Errors[i].Meta.(httperr.Response); ok && c.Errors[i].IsType(gin.ErrorTypePublic) {
				c.JSON(resp.Status, resp)
				return
			}
		}

		last := c.Errors.Last().Err
		status := httperr.StatusOf(last)
		resp := httperr.Response{Status: status}
		resp.Error.Code = httperr.CodeOf(last)
		resp.Error.Message = last.Error()
		if status == http.StatusInternalServerError {
			resp.Error.Message = "Internal server error"
		}
		if status == http.StatusServiceUnavailable {
			c.Header("Retry-After", httperr.RetryAfterSeconds)
		}
		c.JSON(status, resp)
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("recovered from panic",
					"panic", rec,
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c),
					"stack", string(debug.Stack()),
				)

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = "Internal server error"
				resp.Error.Code = "internal"

				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()
		c.Next()
	}
}
