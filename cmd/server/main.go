package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/qanunai/legal-advisor-backend/internal/conf"
	"github.com/qanunai/legal-advisor-backend/internal/legal/extract"
	"github.com/qanunai/legal-advisor-backend/internal/legal/language"
	"github.com/qanunai/legal-advisor-backend/internal/legal/pipeline"
	"github.com/qanunai/legal-advisor-backend/internal/legal/retrieve"
	"github.com/qanunai/legal-advisor-backend/internal/legal/service"
	"github.com/qanunai/legal-advisor-backend/internal/legal/synthesize"
	"github.com/qanunai/legal-advisor-backend/internal/lexicon"
	"github.com/qanunai/legal-advisor-backend/internal/llm"
	"github.com/qanunai/legal-advisor-backend/internal/pkg/logger"
	"github.com/qanunai/legal-advisor-backend/internal/pkg/workerpool"
	"github.com/qanunai/legal-advisor-backend/internal/server"
	"github.com/qanunai/legal-advisor-backend/internal/websearch/provider"
	searchtypes "github.com/qanunai/legal-advisor-backend/internal/websearch/types"
)

var (
	configFile = flag.String("config", "config.yaml", "config file path")
)

func main() {
	flag.Parse()

	// Load configuration
	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger with config
	log, err := logger.New(&logger.Config{
		Level:            config.Log.Level,
		Format:           config.Log.Format,
		Output:           config.Log.Output,
		EnableCaller:     config.Log.EnableCaller,
		EnableStacktrace: config.Log.EnableStacktrace,
		File: logger.FileConfig{
			Filename:   config.Log.File.Filename,
			MaxSize:    config.Log.File.MaxSize,
			MaxAge:     config.Log.File.MaxAge,
			MaxBackups: config.Log.File.MaxBackups,
			Compress:   config.Log.File.Compress,
		},
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	log.Info("config loaded successfully")

	// Shared collaborator clients
	llmClient := llm.NewClient(&config.OpenAI)

	searchProvider, err := provider.NewFactory().Create(&searchtypes.ProviderConfig{
		ID:       searchtypes.ProviderID(config.Search.Provider),
		APIHost:  config.Search.APIHost,
		APIKey:   config.Search.APIKey,
		EngineID: config.Search.EngineID,
		Timeout:  config.Search.Timeout,
	})
	if err != nil {
		log.Fatal("failed to create search provider", zap.Error(err))
	}

	var lex language.Lexicon
	if config.Lexicon.Enabled {
		lex = lexicon.NewClient(config.Lexicon.APIHost, config.Lexicon.Timeout)
	}

	// Worker pools
	searchPool, err := workerpool.New(config.Pipeline.SearchWorkers, log.Logger)
	if err != nil {
		log.Fatal("failed to create search worker pool", zap.Error(err))
	}
	defer searchPool.Shutdown()

	extractPool, err := workerpool.New(config.Pipeline.ExtractWorkers, log.Logger)
	if err != nil {
		log.Fatal("failed to create extract worker pool", zap.Error(err))
	}
	defer extractPool.Shutdown()

	// Pipeline stages
	classifier := language.NewClassifier(llmClient, lex, log.Logger)
	retriever := retrieve.NewRetriever(searchProvider, searchPool, config.Search.PageSize, log.Logger)

	var extractor extract.DocumentExtractor = extract.NewExtractor(
		extractPool,
		config.Pipeline.FetchTimeout,
		config.Pipeline.FetchRate,
		config.Pipeline.SnippetLimit,
		log.Logger,
	)
	if config.Cache.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     config.Cache.Addr,
			Password: config.Cache.Password,
			DB:       config.Cache.DB,
		})
		defer redisClient.Close()
		extractor = extract.NewCachedExtractor(extractor, redisClient, config.Cache.TTL, log.Logger)
	}

	synthesizer := synthesize.NewSynthesizer(llmClient, log.Logger)

	p := pipeline.New(classifier, retriever, extractor, synthesizer, llmClient,
		config.Pipeline.TrustedSources, log.Logger)

	legalService := service.NewLegalService(p, log.Logger)
	httpServer := server.NewHTTPServer(config, log.Logger, legalService)

	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	log.Info("server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Stop(ctx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
