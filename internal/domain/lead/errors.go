package lead

import "errors"

var (
	ErrLeadNotFound     = errors.New("lead not found")
	ErrCaptchaFailed    = errors.New("captcha verification failed")
	ErrFormsUnavailable = errors.New("forms service unavailable")
	ErrInvalidOption    = errors.New("invalid option")
)
