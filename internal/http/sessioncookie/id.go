package sessioncookie

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IDCodec issues and verifies the per-browser-session id cookie.
// value format: id.base64(hmac(id))
type IDCodec struct {
	Secret     []byte
	CookieName string
	Secure     bool
}

func NewID(secret []byte, name string, secure bool) *IDCodec {
	return &IDCodec{Secret: secret, CookieName: name, Secure: secure}
}

// Ensure returns the request's session id, minting and setting a new one if
// the cookie is missing or tampered with.
func (c *IDCodec) Ensure(ctx *gin.Context) string {
	if v, err := ctx.Cookie(c.CookieName); err == nil && v != "" {
		parts := strings.Split(v, ".")
		if len(parts) == 2 && parts[0] != "" && verify(c.Secret, parts[0], parts[1]) {
			return parts[0]
		}
	}

	id := uuid.NewString()
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, id+"."+sign(c.Secret, id), 0, "/", "", c.Secure, true)
	return id
}
