package domain

import "errors"

var (
	ErrValidation   = errors.New("invalid input")
	ErrFetchTimeout = errors.New("fetch request timed out")
	ErrNetwork      = errors.New("network error")
	ErrExtraction   = errors.New("extraction failed")
	ErrUpstream     = errors.New("upstream API error")
	ErrStreamParse  = errors.New("stream parse error")
)
