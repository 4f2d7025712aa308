package middleware

import (
	"github.com/gin-gonic/gin"

	"tablebite.com/app/internal/i18n"
)

const CtxKeyLang = "lang"

// Lang reads the persisted language preference (falling back to English)
// and makes it available to handlers and the error handler.
func Lang() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := i18n.Default
		if v, err := c.Cookie(i18n.CookieName); err == nil {
			lang = i18n.Normalize(v)
		}
		c.Set(CtxKeyLang, lang)
		c.Next()
	}
}

func GetLang(c *gin.Context) string {
	if v, ok := c.Get(CtxKeyLang); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return i18n.Default
}
