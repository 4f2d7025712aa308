package middleware

import (
	"github.com/gin-gonic/gin"

	"tablebite.com/app/internal/http/sessioncookie"
	"tablebite.com/app/internal/session"
)

const (
	CtxKeySession   = "session"
	CtxKeySessionID = "session_id"
)

// Session rehydrates the session service from its cookie and attaches it to
// the request, along with the stable session id. Handlers that mutate the
// session persist it back through sessioncookie before writing the response.
func Session(ids *sessioncookie.IDCodec, codec *sessioncookie.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxKeySessionID, ids.Ensure(c))
		c.Set(CtxKeySession, codec.Get(c))
		c.Next()
	}
}

func GetSession(c *gin.Context) *session.Service {
	if v, ok := c.Get(CtxKeySession); ok {
		if s, ok := v.(*session.Service); ok {
			return s
		}
	}
	return session.New()
}

func GetSessionID(c *gin.Context) string {
	if v, ok := c.Get(CtxKeySessionID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
