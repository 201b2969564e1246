package service

import (
	"time"

	"github.com/cloo-solutions/relicguide/internal/domain"
)

// Recorder receives outcome measurements from the services.
type Recorder interface {
	ObserveChat(mode domain.AnswerMode, duration time.Duration)
	ObserveVideo(outcome string)
}

type noopRecorder struct{}

func (noopRecorder) ObserveChat(domain.AnswerMode, time.Duration) {}
func (noopRecorder) ObserveVideo(string)                          {}

// VideoOutcomeFailure labels resolutions that found no asset at all.
const VideoOutcomeFailure = "failure"
