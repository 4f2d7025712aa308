package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"tablebite.com/app/internal/http/middleware"
	"tablebite.com/app/internal/http/sessioncookie"
	"tablebite.com/app/internal/session"
)

// respond persists the session cookie when the request mutated it, then
// writes the JSON body. Cookies must go out before the body, so every
// handler ends in exactly one respond or one middleware.Fail.
func respond(c *gin.Context, codec *sessioncookie.Codec, status int, payload gin.H) {
	sess := middleware.GetSession(c)
	if sess.Dirty() {
		if err := codec.Set(c, sess); err != nil {
			slog.Default().Error("session cookie write failed", "err", err, "request_id", middleware.GetRequestID(c))
		}
	}
	c.JSON(status, payload)
}

// sessionView is the slice of session state the frontend renders from.
func sessionView(sess *session.Service, storeID string) gin.H {
	return gin.H{
		"currentStore": sess.CurrentStoreID(),
		"recentStores": sess.RecentStoreIDs(),
		"searchQuery":  sess.SearchQuery(),
		"store":        sess.Store(storeID),
	}
}
