package summarizer

import (
	"context"
)

// Chunk is one incremental fragment of model output.
type Chunk struct {
	Text string `json:"text"`
}

// ChunkStream yields summary chunks in order. Next reports false once the
// stream is exhausted or failed; Err tells the two apart.
type ChunkStream interface {
	Next() bool
	Current() Chunk
	Err() error
	Close() error
}

// Summarizer produces article summaries, either streamed chunk by chunk or
// as a single collective summary of several headlines.
type Summarizer interface {
	Stream(ctx context.Context, text string) (ChunkStream, error)
	Summarize(ctx context.Context, input CollectiveInput) (string, error)
}
