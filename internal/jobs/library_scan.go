package jobs

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// VideoLister lists the video library.
type VideoLister interface {
	List(ctx context.Context, ext string) ([]string, error)
}

// LibraryGauge receives the size of each scan.
type LibraryGauge interface {
	SetVideoLibrarySize(n int)
}

// LibraryScan periodically counts the videos the resolver can fall back to,
// so an empty library is noticed before a visitor hits it.
type LibraryScan struct {
	lister VideoLister
	ext    string
	gauge  LibraryGauge
	logger *logrus.Logger
	last   int
}

// NewLibraryScan creates a LibraryScan. gauge may be nil.
func NewLibraryScan(lister VideoLister, ext string, gauge LibraryGauge, logger *logrus.Logger) *LibraryScan {
	return &LibraryScan{lister: lister, ext: ext, gauge: gauge, logger: logger, last: -1}
}

// ProcessJobs lists the library once. Only the worker goroutine calls it.
func (s *LibraryScan) ProcessJobs(ctx context.Context) error {
	names, err := s.lister.List(ctx, s.ext)
	if err != nil {
		return fmt.Errorf("failed to scan video library: %w", err)
	}

	n := len(names)
	if s.gauge != nil {
		s.gauge.SetVideoLibrarySize(n)
	}

	if n != s.last {
		log := s.logger.WithFields(logrus.Fields{"count": n, "ext": s.ext})
		if n == 0 {
			log.Warn("video library is empty, video requests will fail")
		} else {
			log.Info("video library scanned")
		}
		s.last = n
	}
	return nil
}
