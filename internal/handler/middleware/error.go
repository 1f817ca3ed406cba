package middleware

import (
	"log/slog"
	"net/http"

	"collabflow/internal/handler/httperr"
	"collabflow/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders errors a handler recorded with c.Error but never
// wrote. Public errors carry their prepared response; anything else is
// classified like a use case error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		if last := c.Errors.Last(); last != nil {
			if resp, ok := last.Meta.(httperr.Response); ok && last.IsType(gin.ErrorTypePublic) {
				c.JSON(resp.Status, resp)
				return
			}
			httperr.Respond(c, last.Err)
			return
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Internal server error"}})
	}
}

// CustomRecovery turns a panic into a 500 and logs where it came from.
func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				err := errs.Newf("panic: %v", rec)
				slog.Error("recovered from panic",
					"error", err.Error(),
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c),
					"stack", errs.ExtractStackLines(err, 20))

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = "Internal server error"
				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()
		c.Next()
	}
}
