package forms

import "errors"

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrUpstream           = errors.New("forms service request failed")
)
