package admin

import (
	"context"
	"fmt"
	"io"

	"github.com/cloo-solutions/relicguide/internal/config"
	"github.com/cloo-solutions/relicguide/internal/knowledge"
	"github.com/cloo-solutions/relicguide/internal/llm"
	"github.com/cloo-solutions/relicguide/internal/logging"
	"github.com/cloo-solutions/relicguide/internal/metrics"
	"github.com/cloo-solutions/relicguide/internal/service"
	"github.com/cloo-solutions/relicguide/internal/storage"
	"github.com/sirupsen/logrus"
)

const outputURLPrefix = "/output/"

// app holds the components shared by every subcommand.
type app struct {
	cfg     *config.Config
	logger  *logrus.Logger
	relics  *knowledge.Store
	aliases *knowledge.VideoIndex
	store   service.AssetStore
	metrics *metrics.Collector
	chat    *service.ChatService
	video   *service.VideoService
}

type appOptions struct {
	logOutput   io.Writer
	noDelay     bool
	withMetrics bool
}

func loadApp(ctx context.Context, opts appOptions) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return newApp(ctx, cfg, opts)
}

func newApp(ctx context.Context, cfg *config.Config, opts appOptions) (*app, error) {
	logger := logging.NewWithOutput(cfg.LogLevel, opts.logOutput)

	relics, err := knowledge.LoadStore(cfg.KnowledgeFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge base: %w", err)
	}
	aliases, err := knowledge.LoadVideoIndex(cfg.AliasFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load video aliases: %w", err)
	}
	logger.WithFields(logrus.Fields{"relics": relics.Len(), "aliases": aliases.Len()}).Info("knowledge base loaded")

	store, err := newAssetStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	// A typed nil *llm.Client would defeat the service's nil check.
	var completer service.Completer
	if cfg.HasLLM() {
		completer = llm.NewClient(llm.Config{
			APIKey:      cfg.LLMAPIKey,
			BaseURL:     cfg.LLMBaseURL,
			Model:       cfg.LLMModel,
			Temperature: cfg.LLMTemperature,
			MaxTokens:   cfg.LLMMaxTokens,
			Timeout:     cfg.LLMTimeout,
		})
		logger.WithFields(logrus.Fields{"base_url": cfg.LLMBaseURL, "model": cfg.LLMModel}).Info("chat completion enabled")
	} else {
		logger.Warn("RELIC_LLM_API_KEY not set, answering in offline mode")
	}

	delay := cfg.VideoDelay
	if opts.noDelay {
		delay = 0
	}

	a := &app{
		cfg:     cfg,
		logger:  logger,
		relics:  relics,
		aliases: aliases,
		store:   store,
		chat:    service.NewChatService(relics, completer, logger),
		video: service.NewVideoService(aliases, store, service.VideoConfig{
			Ext:   cfg.VideoExt,
			Delay: delay,
		}, logger),
	}

	if opts.withMetrics {
		a.metrics = metrics.NewCollector()
		a.chat.WithRecorder(a.metrics)
		a.video.WithRecorder(a.metrics)
	}

	return a, nil
}

func newAssetStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (service.AssetStore, error) {
	if cfg.HasS3() {
		s3Store, err := storage.NewS3Store(ctx, storage.S3ClientConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			UsePathStyle:    true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 client: %w", err)
		}
		if err := s3Store.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("failed to reach S3 bucket: %w", err)
		}
		logger.WithField("bucket", cfg.S3Bucket).Info("serving videos from S3 bucket")
		return s3Store, nil
	}

	local := storage.NewLocalStore(cfg.OutputDir, outputURLPrefix)
	if err := local.EnsureDir(); err != nil {
		return nil, err
	}
	logger.WithField("dir", local.Dir()).Info("serving videos from local directory")
	return local, nil
}
