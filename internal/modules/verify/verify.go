// Package verify checks bot-verification tokens with the provider. The
// provider is a black box: this package only knows the call contract.
package verify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnavailable means the provider could not be reached. The triggering
// action aborts without retrying.
var ErrUnavailable = errors.New("verify: provider unavailable")

// ErrRejected means the token failed verification.
var ErrRejected = errors.New("verify: token rejected")

// Verifier checks a token acquired by the client for a named action.
type Verifier interface {
	Verify(ctx context.Context, token, action string) error
}

const defaultEndpoint = "https://www.google.com/recaptcha/api/siteverify"

type Recaptcha struct {
	endpoint string
	secret   string
	httpc    *http.Client
}

func NewRecaptcha(secret, endpoint string) *Recaptcha {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Recaptcha{
		endpoint: endpoint,
		secret:   secret,
		httpc:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Recaptcha) Verify(ctx context.Context, token, action string) error {
	form := url.Values{}
	form.Set("secret", r.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := r.httpc.Do(req)
	if err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return ErrUnavailable
	}

	var payload struct {
		Success bool   `json:"success"`
		Action  string `json:"action"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	if !payload.Success {
		return ErrRejected
	}
	if action != "" && payload.Action != "" && payload.Action != action {
		return ErrRejected
	}
	return nil
}

// Disabled accepts every token. Used when no provider secret is configured
// (local development).
type Disabled struct{}

func (Disabled) Verify(context.Context, string, string) error { return nil }
