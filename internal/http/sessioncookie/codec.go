// Package sessioncookie persists the whole session snapshot in one
// HMAC-signed cookie with session lifetime: the cookie dies with the browser
// session, exactly like the tab-scoped storage it replaces. A second signed
// cookie carries a stable session id used to guard in-flight actions.
package sessioncookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tablebite.com/app/internal/session"
)

var ErrInvalid = errors.New("invalid session cookie")

type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
}

func New(secret []byte, name string, secure bool) *Codec {
	return &Codec{Secret: secret, CookieName: name, Secure: secure}
}

// value format: base64(json state).base64(hmac)
func (c *Codec) Encode(st session.State) (string, error) {
	b, err := json.Marshal(st)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(b)
	return payload + "." + sign(c.Secret, payload), nil
}

func (c *Codec) Decode(v string) (session.State, error) {
	parts := strings.Split(v, ".")
	if len(parts) != 2 {
		return session.State{}, ErrInvalid
	}
	payload, sig := parts[0], parts[1]
	if !verify(c.Secret, payload, sig) {
		return session.State{}, ErrInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return session.State{}, ErrInvalid
	}
	var st session.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return session.State{}, ErrInvalid
	}
	return st, nil
}

// Get rehydrates the session service from the request cookie, returning a
// fresh empty service when the cookie is absent or tampered with.
func (c *Codec) Get(ctx *gin.Context) *session.Service {
	v, err := ctx.Cookie(c.CookieName)
	if err != nil || v == "" {
		return session.New()
	}
	st, err := c.Decode(v)
	if err != nil {
		c.Clear(ctx)
		return session.New()
	}
	return session.Restore(st)
}

// Set writes the snapshot back. MaxAge 0 makes it a session cookie.
func (c *Codec) Set(ctx *gin.Context, svc *session.Service) error {
	val, err := c.Encode(svc.Snapshot())
	if err != nil {
		return err
	}
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, val, 0, "/", "", c.Secure, true)
	svc.ClearDirty()
	return nil
}

func (c *Codec) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, "", -1, "/", "", c.Secure, true)
}

func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func verify(secret []byte, payload, sig string) bool {
	return hmac.Equal([]byte(sign(secret, payload)), []byte(sig))
}
