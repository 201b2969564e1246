package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloo-solutions/relicguide/internal/domain"
	"github.com/cloo-solutions/relicguide/internal/logging"
	"github.com/cloo-solutions/relicguide/internal/storage"
	"github.com/cloo-solutions/relicguide/internal/telemetry"
	"github.com/sirupsen/logrus"
)

// DefaultVideoExt is the extension appended to synthesized file names.
const DefaultVideoExt = ".mp4"

// AliasLookup resolves recognized phrases to asset file names.
type AliasLookup interface {
	Lookup(phrase string) (string, bool)
}

// AssetStore is the read-only video library.
type AssetStore interface {
	Stat(ctx context.Context, name string) (*storage.ObjectMetadata, error)
	List(ctx context.Context, ext string) ([]string, error)
	URL(ctx context.Context, name string) (string, error)
}

// VideoConfig tunes VideoService.
type VideoConfig struct {
	Ext   string
	Delay time.Duration
}

// VideoService resolves free-text phrases to servable video assets.
//
// Resolution tiers, in order: exact alias match, synthesized file name,
// any available video. Only an empty library is a failure.
type VideoService struct {
	aliases  AliasLookup
	store    AssetStore
	ext      string
	delay    time.Duration
	logger   *logrus.Logger
	recorder Recorder
}

// NewVideoService creates a new VideoService instance
func NewVideoService(aliases AliasLookup, store AssetStore, cfg VideoConfig, logger *logrus.Logger) *VideoService {
	ext := cfg.Ext
	if ext == "" {
		ext = DefaultVideoExt
	}
	return &VideoService{
		aliases:  aliases,
		store:    store,
		ext:      ext,
		delay:    cfg.Delay,
		logger:   logger,
		recorder: noopRecorder{},
	}
}

// WithRecorder attaches a metrics recorder.
func (s *VideoService) WithRecorder(r Recorder) *VideoService {
	if r != nil {
		s.recorder = r
	}
	return s
}

// Resolve maps text to an asset. It returns domain.ErrNoLocalVideo when the
// library holds no video at all.
func (s *VideoService) Resolve(ctx context.Context, text string) (*domain.AssetReference, error) {
	phrase := strings.TrimSpace(text)

	ctx, span := telemetry.StartSpan(ctx, "video.resolve", telemetry.SpanAttributes{Phrase: phrase})
	defer span.End()

	log := logging.FromContext(ctx, s.logger).WithField("phrase", phrase)
	log.Info("video: request received")

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	candidate, tier := s.candidate(phrase)

	meta, err := s.store.Stat(ctx, candidate)
	switch {
	case err == nil:
		ref, err := s.reference(ctx, meta.Name, tier, fmt.Sprintf("%dKB", meta.ContentLength/1024), "播放: "+meta.Name)
		if err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{"file": ref.FileName, "tier": ref.Tier}).Info("video: resolved")
		s.recorder.ObserveVideo(string(ref.Tier))
		return ref, nil
	case errors.Is(err, domain.ErrAssetNotFound):
	default:
		log.WithError(err).Warn("video: stat failed, falling back")
	}

	telemetry.AddBreadcrumb(ctx, "video", "candidate missing: "+candidate)

	ref, err := s.fallback(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoLocalVideo) {
			log.Warn("video: library is empty")
			s.recorder.ObserveVideo(VideoOutcomeFailure)
		} else {
			span.SetError(err)
		}
		return nil, err
	}

	log.WithFields(logrus.Fields{"file": ref.FileName, "candidate": candidate}).Info("video: auto-matched fallback")
	s.recorder.ObserveVideo(string(ref.Tier))
	return ref, nil
}

// candidate applies the alias table and suffix normalization.
func (s *VideoService) candidate(phrase string) (string, domain.ResolutionTier) {
	if name, ok := s.aliases.Lookup(phrase); ok {
		return name, domain.TierAlias
	}
	if strings.HasSuffix(phrase, s.ext) {
		return phrase, domain.TierSynthesized
	}
	return phrase + s.ext, domain.TierSynthesized
}

func (s *VideoService) fallback(ctx context.Context) (*domain.AssetReference, error) {
	names, err := s.store.List(ctx, s.ext)
	if err != nil {
		return nil, fmt.Errorf("failed to scan video library: %w", err)
	}
	if len(names) == 0 {
		return nil, domain.ErrNoLocalVideo
	}

	name := names[0]
	return s.reference(ctx, name, domain.TierFallback, domain.CachedSizeHint, "自动匹配: "+name)
}

func (s *VideoService) reference(ctx context.Context, name string, tier domain.ResolutionTier, size, message string) (*domain.AssetReference, error) {
	u, err := s.store.URL(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to build video url: %w", err)
	}
	return &domain.AssetReference{
		FileName: name,
		URL:      u,
		SizeHint: size,
		Message:  message,
		Tier:     tier,
	}, nil
}

// wait injects the loading delay shown by the front end.
func (s *VideoService) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
