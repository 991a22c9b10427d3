package article

import (
	"fmt"
	"net/url"
	"regexp"
	"stocksnip/internal/domain"
	"strings"

	"mvdan.cc/xurls/v2"
)

var httpURLRe = mustStrictURLRe()

func mustStrictURLRe() *regexp.Regexp {
	re, err := xurls.StrictMatchingScheme(`https?://`)
	if err != nil {
		panic(fmt.Sprintf("create URL regexp: %v", err))
	}

	return re
}

// ValidateURL accepts only absolute http(s) URLs that consist of nothing but
// the URL itself.
func ValidateURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: URL is empty", domain.ErrValidation)
	}

	if httpURLRe.FindString(trimmed) != trimmed {
		return nil, fmt.Errorf("%w: not an http(s) URL: %q", domain.ErrValidation, trimmed)
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: parse URL: %w", domain.ErrValidation, err)
	}

	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%w: URL is not absolute: %q", domain.ErrValidation, trimmed)
	}

	return u, nil
}
