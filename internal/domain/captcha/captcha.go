// Package captcha verifies reCAPTCHA tokens.
package captcha

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// SkipToken lets flows that defer verification create a lead without a token.
const SkipToken = "skip"

var (
	ErrVerificationFailed = errors.New("reCAPTCHA verification failed")
	ErrUnavailable        = errors.New("reCAPTCHA service unavailable")
)

type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

type siteVerifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	Action     string   `json:"action"`
	ErrorCodes []string `json:"error-codes"`
}

// Recaptcha calls Google's siteverify endpoint.
type Recaptcha struct {
	http   *resty.Client
	url    string
	secret string
}

func NewRecaptcha(verifyURL, secret string, timeout time.Duration) *Recaptcha {
	return &Recaptcha{
		http:   resty.New().SetTimeout(timeout),
		url:    verifyURL,
		secret: secret,
	}
}

func (r *Recaptcha) Verify(ctx context.Context, token, remoteIP string) error {
	if token == SkipToken {
		return nil
	}
	if token == "" {
		return ErrVerificationFailed
	}

	form := map[string]string{
		"secret":   r.secret,
		"response": token,
	}
	if remoteIP != "" {
		form["remoteip"] = remoteIP
	}

	var out siteVerifyResponse
	resp, err := r.http.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&out).
		Post(r.url)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: status=%d", ErrUnavailable, resp.StatusCode())
	}
	if !out.Success {
		return fmt.Errorf("%w: %v", ErrVerificationFailed, out.ErrorCodes)
	}
	return nil
}

// Disabled accepts every token. Used when no secret is configured outside production.
type Disabled struct{}

func (Disabled) Verify(context.Context, string, string) error { return nil }
