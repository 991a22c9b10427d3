package domain

import "encoding/json"

// AnswerRequest is the inbound body of the streaming summary endpoint.
type AnswerRequest struct {
	Article *ArticleRequest `json:"article"`
}

type ArticleRequest struct {
	URL string `json:"url"`
}

// SummaryRequest is the inbound body of the collective summary endpoint.
// Article is kept raw because the dashboard sends either one headline or a
// list of them.
type SummaryRequest struct {
	Article json.RawMessage `json:"article"`
}

type Headline struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Source   string `json:"source,omitempty"`
	URL      string `json:"url,omitempty"`
}

type RawDocument struct {
	URL         string
	HTML        string
	StatusCode  int
	ContentType string
}
