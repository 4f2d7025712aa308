package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"tablebite.com/app/internal/i18n"
	"tablebite.com/app/internal/shared/apperr"
)

// Recovery writes the error response itself: a panic unwinds past the error
// handler middleware, so attaching the error would leave an empty 200.
func Recovery(l *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		stack := debug.Stack()
		l.LogAttrs(c.Request.Context(), slog.LevelError, "panic_recovered",
			slog.String("request_id", GetRequestID(c)),
			slog.Any("panic", recovered),
			slog.String("stack", string(stack)),
		)

		err := apperr.Wrap(fmt.Errorf("panic: %v", recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":      i18n.T(GetLang(c), apperr.PublicMessage(err)),
			"request_id": GetRequestID(c),
		})
	})
}
