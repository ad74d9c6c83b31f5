package upload

import "errors"

var (
	ErrLeadNotFound       = errors.New("submission not found")
	ErrFileTooLarge       = errors.New("file exceeds maximum allowed size")
	ErrInvalidMimeType    = errors.New("file type is not allowed")
	ErrEmptyFile          = errors.New("file is empty")
	ErrInvalidName        = errors.New("invalid file or folder name")
	ErrArchiveDisabled    = errors.New("archive download is not configured")
	ErrListingUnavailable = errors.New("file listing unavailable")
)
