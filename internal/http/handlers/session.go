package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tablebite.com/app/internal/http/middleware"
	"tablebite.com/app/internal/http/sessioncookie"
	"tablebite.com/app/internal/http/validation"
	"tablebite.com/app/internal/i18n"
	"tablebite.com/app/internal/shared/apperr"
)

// SessionHandler exposes the session snapshot and the session-wide settings
// (search query, language preference).
type SessionHandler struct {
	SC     *sessioncookie.Codec
	Secure bool
}

func NewSessionHandler(sc *sessioncookie.Codec, secure bool) *SessionHandler {
	return &SessionHandler{SC: sc, Secure: secure}
}

// Get handles GET /api/session.
func (h *SessionHandler) Get(c *gin.Context) {
	sess := middleware.GetSession(c)
	respond(c, h.SC, http.StatusOK, gin.H{
		"session": sess.Snapshot(),
		"lang":    middleware.GetLang(c),
	})
}

type searchRequest struct {
	Query string `json:"query"`
}

// SetSearch handles PUT /api/session/search.
func (h *SessionHandler) SetSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("common.unexpectedError", validation.FromBindError(err, &req)))
		return
	}

	sess := middleware.GetSession(c)
	sess.SetSearchQuery(req.Query)
	respond(c, h.SC, http.StatusOK, gin.H{"searchQuery": sess.SearchQuery()})
}

type langRequest struct {
	Lang string `json:"lang" binding:"required"`
}

// SetLang handles PUT /api/session/lang. The preference lives in its own
// cookie so a returning browser keeps its language across sessions.
func (h *SessionHandler) SetLang(c *gin.Context) {
	var req langRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("common.unexpectedError", validation.FromBindError(err, &req)))
		return
	}

	lang := i18n.Normalize(req.Lang)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(i18n.CookieName, lang, 365*24*3600, "/", "", h.Secure, false)
	respond(c, h.SC, http.StatusOK, gin.H{"lang": lang})
}
