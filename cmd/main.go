package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"stocksnip/internal/article"
	"stocksnip/internal/config"
	"stocksnip/internal/server"
	"stocksnip/internal/summarizer"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.ErrorContext(ctx, "Failed to load config",
			"error", err)

		return
	}

	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(log)
	gin.SetMode(gin.ReleaseMode)

	s, err := initSummarizer(cfg)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize summarizer",
			"error", err,
			"baseURL", cfg.LLMBaseURL,
			"model", cfg.LLMModel)

		return
	}
	log.InfoContext(ctx, "Summarizer is initialized",
		"baseURL", cfg.LLMBaseURL,
		"model", cfg.LLMModel,
		"maxTokens", cfg.SummaryMaxTokens,
		"gatewayAuth", cfg.HeliconeAPIKey != "")

	pipeline := article.NewPipeline(
		article.NewFetcher(&http.Client{}, cfg.FetchTimeout, cfg.FetchMaxBodyBytes, log),
		article.NewExtractor(log),
		log,
	)

	srv := server.New(cfg.HTTPAddr, pipeline, s, cfg.RequestTimeout, log)

	go func() {
		if startErr := srv.Start(); startErr != nil {
			log.ErrorContext(ctx, "Server is stopped with error",
				"error", startErr,
				"addr", cfg.HTTPAddr)

			cancel()
		}
	}()
	log.InfoContext(ctx, "Server is started",
		"addr", cfg.HTTPAddr,
		"fetchTimeout", cfg.FetchTimeout.String(),
		"requestTimeout", cfg.RequestTimeout.String())

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-c:
		log.InfoContext(ctx, "Shutdown signal is received",
			"signal", sig.String())
	case <-ctx.Done():
	}

	log.InfoContext(ctx, "Exiting...",
		"uptimeSeconds", time.Since(start).Seconds())

	if err = srv.Stop(context.Background()); err != nil {
		log.ErrorContext(ctx, "Failed to stop server",
			"error", err)

		return
	}
	log.InfoContext(ctx, "Server is stopped",
		"uptimeSeconds", time.Since(start).Seconds())
}

func initSummarizer(cfg config.Config) (*summarizer.OpenAISummarizer, error) {
	return summarizer.NewOpenAISummarizer(summarizer.Config{
		APIKey:        cfg.TogetherAPIKey,
		BaseURL:       cfg.LLMBaseURL,
		Model:         cfg.LLMModel,
		MaxTokens:     cfg.SummaryMaxTokens,
		MaxRetries:    cfg.LLMMaxRetries,
		GatewayAPIKey: cfg.HeliconeAPIKey,
	})
}
