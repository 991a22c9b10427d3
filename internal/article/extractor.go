package article

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"stocksnip/internal/domain"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

const (
	NoContentText          = "No content available"
	ContentUnavailableText = "Content not available"
)

// Extraction is the outcome of a successful extraction. Text is either the
// article's plain text or NoContentText.
type Extraction struct {
	Title string
	Text  string
}

// Extractor isolates article text from fetched markup with a readability
// heuristic.
type Extractor struct {
	log *slog.Logger
}

// NewExtractor builds a new extractor instance.
func NewExtractor(log *slog.Logger) *Extractor {
	return &Extractor{log: log}
}

// Extract isolates the main article text of doc without running scripts or
// loading sub-resources. A document with no usable markup or no readable
// body yields NoContentText; parser failures are reported as
// domain.ErrExtraction.
func (e *Extractor) Extract(ctx context.Context, doc domain.RawDocument) (extraction Extraction, err error) {
	defer func() {
		if r := recover(); r != nil {
			extraction = Extraction{}
			err = fmt.Errorf("%w: recovered panic: %v", domain.ErrExtraction, r)
		}
	}()

	if strings.TrimSpace(doc.HTML) == "" {
		return Extraction{Text: NoContentText}, nil
	}

	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(doc.HTML))
	if err != nil {
		return Extraction{}, fmt.Errorf("%w: create document from reader: %w", domain.ErrExtraction, err)
	}

	if !hasMarkup(parsed, doc.HTML) {
		e.log.DebugContext(ctx, "Document has no markup",
			"url", doc.URL,
			"htmlLen", len(doc.HTML))

		return Extraction{Text: NoContentText}, nil
	}

	article, err := readability.FromReader(strings.NewReader(doc.HTML), documentURL(doc.URL))
	if err != nil {
		return Extraction{}, fmt.Errorf("%w: parse readability: %w", domain.ErrExtraction, err)
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		if content, ok := parsed.Find("meta[property='og:title']").Attr("content"); ok {
			title = strings.TrimSpace(content)
		}
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		text = bareBodyText(parsed)
	}
	if text == "" {
		e.log.DebugContext(ctx, "Readability found no article",
			"url", doc.URL,
			"title", title)

		return Extraction{Title: title, Text: NoContentText}, nil
	}

	return Extraction{Title: title, Text: text}, nil
}

// hasMarkup reports whether raw is an HTML document. The parser synthesizes
// html, head and body for any input, so plain text and JSON only count when
// they carry real elements or an explicit document wrapper.
func hasMarkup(parsed *goquery.Document, raw string) bool {
	if parsed.Find("head *, body *").Length() > 0 {
		return true
	}

	lower := strings.ToLower(raw)

	return strings.Contains(lower, "<body") || strings.Contains(lower, "<html")
}

// bareBodyText returns the text of a body that holds no child elements.
func bareBodyText(parsed *goquery.Document) string {
	body := parsed.Find("body")
	if body.Children().Length() > 0 {
		return ""
	}

	return strings.TrimSpace(body.Text())
}

func documentURL(raw string) *url.URL {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u == nil {
		return &url.URL{}
	}

	return u
}
