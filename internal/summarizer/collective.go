package summarizer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"stocksnip/internal/domain"
	"strconv"
	"strings"
)

// CollectiveInput is the payload of an aggregate summary. Headlines is set
// when the payload has the dashboard's headline shape; anything else is kept
// as compact JSON in Raw.
type CollectiveInput struct {
	Headlines []domain.Headline
	Raw       string
}

// ParseCollectiveInput accepts a headline list, a single headline, or any
// other non-empty JSON value. Missing, null, false, zero and empty-string
// values are rejected with domain.ErrValidation.
func ParseCollectiveInput(raw json.RawMessage) (CollectiveInput, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || isEmptyValue(trimmed) {
		return CollectiveInput{}, fmt.Errorf("%w: article is missing", domain.ErrValidation)
	}

	var list []domain.Headline
	if err := json.Unmarshal(trimmed, &list); err == nil {
		if headlines := nonEmptyHeadlines(list); len(headlines) > 0 {
			return CollectiveInput{Headlines: headlines}, nil
		}
	}

	var single domain.Headline
	if err := json.Unmarshal(trimmed, &single); err == nil {
		if headlines := nonEmptyHeadlines([]domain.Headline{single}); len(headlines) > 0 {
			return CollectiveInput{Headlines: headlines}, nil
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return CollectiveInput{}, fmt.Errorf("%w: compact article: %w", domain.ErrValidation, err)
	}

	return CollectiveInput{Raw: compact.String()}, nil
}

// Render formats the input as prompt text.
func (in CollectiveInput) Render() string {
	if len(in.Headlines) == 0 {
		return in.Raw
	}

	var b strings.Builder
	for i, h := range in.Headlines {
		if i > 0 {
			b.WriteString("\n")
		}

		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". Headline: ")
		b.WriteString(h.Headline)
		b.WriteString("\n")

		if h.Summary != "" {
			b.WriteString("   Summary: ")
			b.WriteString(h.Summary)
			b.WriteString("\n")
		}
		if h.Source != "" {
			b.WriteString("   Source: ")
			b.WriteString(h.Source)
			b.WriteString("\n")
		}
	}

	return b.String()
}

func nonEmptyHeadlines(list []domain.Headline) []domain.Headline {
	var out []domain.Headline

	for _, h := range list {
		h.Headline = strings.TrimSpace(h.Headline)
		h.Summary = strings.TrimSpace(h.Summary)
		h.Source = strings.TrimSpace(h.Source)
		h.URL = strings.TrimSpace(h.URL)

		if h.Headline == "" && h.Summary == "" {
			continue
		}

		out = append(out, h)
	}

	return out
}

func isEmptyValue(raw []byte) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}

	switch value := v.(type) {
	case nil:
		return true
	case bool:
		return !value
	case string:
		return value == ""
	case float64:
		return value == 0
	default:
		return false
	}
}
