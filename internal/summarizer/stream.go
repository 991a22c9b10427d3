package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"stocksnip/internal/domain"
	"strings"

	"github.com/openai/openai-go/v3"
)

// Some models open with blank lines; newline-only deltas are dropped until
// this many chunks have been emitted.
const leadingNewlineChunks = 2

type chunkSource interface {
	Next() bool
	Current() openai.ChatCompletionChunk
	Err() error
	Close() error
}

type chunkStream struct {
	src     chunkSource
	cur     Chunk
	emitted int
	err     error
}

func newChunkStream(src chunkSource) *chunkStream {
	return &chunkStream{src: src}
}

func (s *chunkStream) Next() bool {
	if s.err != nil {
		return false
	}

	for s.src.Next() {
		text := deltaText(s.src.Current())
		if text == "" {
			continue
		}

		if s.emitted < leadingNewlineChunks && isNewlineOnly(text) {
			continue
		}

		s.cur = Chunk{Text: text}
		s.emitted++

		return true
	}

	s.err = classifyStreamErr(s.src.Err())

	return false
}

func (s *chunkStream) Current() Chunk {
	return s.cur
}

func (s *chunkStream) Err() error {
	return s.err
}

func (s *chunkStream) Close() error {
	return s.src.Close()
}

func deltaText(chunk openai.ChatCompletionChunk) string {
	if len(chunk.Choices) == 0 {
		return ""
	}

	return chunk.Choices[0].Delta.Content
}

func isNewlineOnly(text string) bool {
	return strings.Contains(text, "\n") && strings.TrimSpace(text) == ""
}

func classifyStreamErr(err error) error {
	if err == nil {
		return nil
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return fmt.Errorf("%w: decode chunk: %w", domain.ErrStreamParse, err)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("read stream: %w", err)
	}

	return fmt.Errorf("%w: read stream: %w", domain.ErrUpstream, err)
}

// ErrorEvent is the final event of a stream that failed after it started.
type ErrorEvent struct {
	Error string `json:"error"`
}

// WriteEvent writes v as one server-sent event: "data: <json>\n\n".
func WriteEvent(w io.Writer, v any) error {
	if _, err := io.WriteString(w, "data: "); err != nil {
		return fmt.Errorf("write prefix: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write terminator: %w", err)
	}

	return nil
}
