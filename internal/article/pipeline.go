package article

import (
	"context"
	"fmt"
	"log/slog"
	"stocksnip/internal/domain"
	"unicode/utf8"
)

// ContentExtractor isolates article text from a fetched document.
type ContentExtractor interface {
	Extract(ctx context.Context, doc domain.RawDocument) (Extraction, error)
}

// Pipeline turns an article URL into normalized prompt text.
type Pipeline struct {
	fetcher   *Fetcher
	extractor ContentExtractor
	log       *slog.Logger
}

// NewPipeline builds a new pipeline from a fetcher and an extractor.
func NewPipeline(fetcher *Fetcher, extractor ContentExtractor, log *slog.Logger) *Pipeline {
	return &Pipeline{
		fetcher:   fetcher,
		extractor: extractor,
		log:       log,
	}
}

// Prepare never fails: fetch and extraction errors degrade to
// ContentUnavailableText so that summarization can still run.
func (p *Pipeline) Prepare(ctx context.Context, articleURL string) string {
	doc, err := p.fetcher.Fetch(ctx, articleURL)
	if err != nil {
		p.log.ErrorContext(ctx, "Failed to fetch article",
			"error", err,
			"url", articleURL,
			"fallback", ContentUnavailableText)

		return ContentUnavailableText
	}

	extraction, err := p.extract(ctx, doc)
	if err != nil {
		p.log.ErrorContext(ctx, "Failed to extract article",
			"error", err,
			"url", articleURL,
			"htmlLen", len(doc.HTML),
			"fallback", ContentUnavailableText)

		return ContentUnavailableText
	}

	if extraction.Text == NoContentText {
		p.log.WarnContext(ctx, "No article content found",
			"url", articleURL,
			"htmlLen", len(doc.HTML),
			"contentType", doc.ContentType)

		return NoContentText
	}

	normalized := Normalize(extraction.Text)

	p.log.InfoContext(ctx, "Article is prepared",
		"url", articleURL,
		"title", extraction.Title,
		"extractedChars", utf8.RuneCountInString(extraction.Text),
		"normalizedChars", utf8.RuneCountInString(normalized))

	return normalized
}

func (p *Pipeline) extract(ctx context.Context, doc domain.RawDocument) (extraction Extraction, err error) {
	defer func() {
		if r := recover(); r != nil {
			extraction = Extraction{}
			err = fmt.Errorf("%w: recovered panic: %v", domain.ErrExtraction, r)
		}
	}()

	return p.extractor.Extract(ctx, doc)
}
