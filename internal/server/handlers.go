package server

import (
	"context"
	"errors"
	"net/http"
	"stocksnip/internal/article"
	"stocksnip/internal/domain"
	"stocksnip/internal/summarizer"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	invalidAnswerInputMessage  = "Invalid input. Provide an article object with a valid URL."
	invalidSummaryInputMessage = "Invalid input. Provide an article object"
	unexpectedErrorMessage     = "An unexpected error occurred"
)

type errorResponse struct {
	Error string `json:"error"`
}

// handleAnswer streams a summary of a single article.
func (s *Server) handleAnswer(c *gin.Context) {
	var req domain.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Article == nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: invalidAnswerInputMessage})
		return
	}

	articleURL, err := article.ValidateURL(req.Article.URL)
	if err != nil {
		s.log.WarnContext(c.Request.Context(), "Rejected article request",
			"requestID", c.GetString(requestIDKey),
			"error", err)

		c.JSON(http.StatusBadRequest, errorResponse{Error: invalidAnswerInputMessage})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.requestTimeout)
	defer cancel()

	text := s.preparer.Prepare(ctx, articleURL.String())

	stream, err := s.summarizer.Stream(ctx, text)
	if err != nil {
		s.writeError(c, "Failed to start summary stream", err)
		return
	}
	defer func() {
		if err = stream.Close(); err != nil {
			s.log.ErrorContext(ctx, "Failed to close summary stream",
				"requestID", c.GetString(requestIDKey),
				"error", err)
		}
	}()

	// The first chunk decides the status code: an upstream that fails
	// before producing output is reported as a JSON error.
	started := stream.Next()
	if !started {
		if err = stream.Err(); err != nil {
			s.writeError(c, "Failed to start summary stream", err)
			return
		}
	}

	c.Header("Content-Type", "text/plain")
	c.Header("Cache-Control", "no-cache")
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	chunks := 0
	for ok := started; ok; ok = stream.Next() {
		if err = summarizer.WriteEvent(c.Writer, stream.Current()); err != nil {
			s.log.WarnContext(ctx, "Failed to write summary chunk",
				"requestID", c.GetString(requestIDKey),
				"error", err,
				"chunks", chunks)

			return
		}
		c.Writer.Flush()
		chunks++
	}

	if err = stream.Err(); err != nil {
		s.log.ErrorContext(ctx, "Summary stream is aborted",
			"requestID", c.GetString(requestIDKey),
			"error", err,
			"chunks", chunks)

		if writeErr := summarizer.WriteEvent(c.Writer, summarizer.ErrorEvent{Error: err.Error()}); writeErr == nil {
			c.Writer.Flush()
		}

		return
	}

	s.log.InfoContext(ctx, "Summary stream is completed",
		"requestID", c.GetString(requestIDKey),
		"url", articleURL.String(),
		"chunks", chunks)
}

// handleSummary returns one collective summary for a set of headlines.
func (s *Server) handleSummary(c *gin.Context) {
	var req domain.SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: invalidSummaryInputMessage})
		return
	}

	input, err := summarizer.ParseCollectiveInput(req.Article)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: invalidSummaryInputMessage})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.requestTimeout)
	defer cancel()

	summary, err := s.summarizer.Summarize(ctx, input)
	if err != nil {
		s.writeError(c, "Failed to generate summary", err)
		return
	}

	s.log.InfoContext(ctx, "Collective summary is generated",
		"requestID", c.GetString(requestIDKey),
		"headlines", len(input.Headlines),
		"summaryLen", len(summary))

	c.String(http.StatusAccepted, summary)
}

func (s *Server) writeError(c *gin.Context, msg string, err error) {
	status := statusForError(err)

	s.log.ErrorContext(c.Request.Context(), msg,
		"requestID", c.GetString(requestIDKey),
		"error", err,
		"status", status)

	message := strings.TrimSpace(err.Error())
	if message == "" || status == http.StatusInternalServerError {
		message = unexpectedErrorMessage
	}

	c.JSON(status, errorResponse{Error: message})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrFetchTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrUpstream), errors.Is(err, domain.ErrStreamParse), errors.Is(err, domain.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
