// Package main is the entry point for the chatbot API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/medassist-ai/rag-chatbot/internal/config"
	"github.com/medassist-ai/rag-chatbot/internal/handler"
	"github.com/medassist-ai/rag-chatbot/internal/llm"
	"github.com/medassist-ai/rag-chatbot/internal/memory"
	"github.com/medassist-ai/rag-chatbot/internal/middleware"
	"github.com/medassist-ai/rag-chatbot/internal/responder"
	"github.com/medassist-ai/rag-chatbot/internal/retrieval"
	"github.com/medassist-ai/rag-chatbot/internal/store"
	"github.com/medassist-ai/rag-chatbot/pkg/logger"
	"github.com/medassist-ai/rag-chatbot/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting chatbot API server")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "rag-chatbot", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Open the durable store
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open store", zap.Error(err))
		os.Exit(1)
	}
	defer st.Close()

	// Connect to the pre-built vector index
	if cfg.DatabaseURL == "" {
		log.Error("DATABASE_URL is required (pre-built passage index)")
		os.Exit(1)
	}
	embedder, err := retrieval.NewOpenAIEmbedder(cfg.OpenAIAPIKey, cfg.EmbeddingModel)
	if err != nil {
		log.Error("failed to create embedder", zap.Error(err))
		os.Exit(1)
	}
	retriever, err := retrieval.NewPGVectorRetriever(ctx, cfg.DatabaseURL, embedder)
	if err != nil {
		log.Error("failed to connect to vector index", zap.Error(err))
		os.Exit(1)
	}
	defer retriever.Close()

	// Initialize the chat-completion client
	llmClient, err := llm.NewClient(llm.Provider(cfg.Provider), llm.Options{
		APIKey:        providerKey(cfg),
		AzureEndpoint: cfg.AzureOpenAIEndpoint,
	})
	if err != nil {
		log.Error("failed to create LLM client", zap.Error(err))
		os.Exit(1)
	}
	log.Info("LLM client ready", zap.String("provider", llmClient.Name()))

	// Assemble the core
	mem := memory.New(st, cfg.MaxHistory, log)
	res := responder.New(mem, retriever, llmClient, responder.Config{
		Model:       cfg.ChatModel,
		TopK:        cfg.RetrievalTopK,
		MaxTurns:    cfg.MaxTurns,
		CallTimeout: cfg.LLMTimeout,
	}, log)

	// Initialize handlers
	rootHandler := handler.NewRootHandler(st, log)
	healthHandler := handler.NewHealthHandler(st, retriever)
	chatHandler := handler.NewChatHandler(res, log)
	historyHandler := handler.NewHistoryHandler(mem, log)
	feedbackHandler := handler.NewFeedbackHandler(st, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Session)
	r.Use(middleware.Logging(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Landing page and health endpoints
	r.Get("/", rootHandler.Index)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// Chat API
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Post("/chat", chatHandler.Chat)
		r.Post("/chat/stream", chatHandler.ChatStream)
		r.Post("/clear", historyHandler.Clear)
		r.Get("/history", historyHandler.History)
		r.Post("/reaction", feedbackHandler.React)

		// Admin listings
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminGate(cfg.AdminSecret))
			r.Get("/feedback", feedbackHandler.ListFeedback)
			r.Get("/visits", feedbackHandler.ListVisits)
		})
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}

func providerKey(cfg *config.Config) string {
	switch llm.Provider(cfg.Provider) {
	case llm.ProviderAzure:
		return cfg.AzureOpenAIKey
	case llm.ProviderAnthropic:
		return cfg.AnthropicAPIKey
	default:
		return cfg.OpenAIAPIKey
	}
}
