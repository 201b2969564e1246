package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloo-solutions/relicguide/internal/domain"
	"github.com/cloo-solutions/relicguide/internal/llm"
	"github.com/cloo-solutions/relicguide/internal/logging"
	"github.com/cloo-solutions/relicguide/internal/prompt"
	"github.com/cloo-solutions/relicguide/internal/telemetry"
	"github.com/sirupsen/logrus"
)

// RelicLookup resolves relic ids against the knowledge base.
type RelicLookup interface {
	Get(id string) (domain.Relic, bool)
}

// Completer performs one chat-completion exchange.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, question string) (string, error)
}

// ChatService answers visitor questions in the voice of a relic. It never
// returns an error: every upstream failure becomes a locally built answer.
type ChatService struct {
	relics   RelicLookup
	llm      Completer
	logger   *logrus.Logger
	recorder Recorder
}

// NewChatService creates a new ChatService. A nil completer answers every
// question in offline mode.
func NewChatService(relics RelicLookup, completer Completer, logger *logrus.Logger) *ChatService {
	return &ChatService{
		relics:   relics,
		llm:      completer,
		logger:   logger,
		recorder: noopRecorder{},
	}
}

// WithRecorder attaches a metrics recorder.
func (s *ChatService) WithRecorder(r Recorder) *ChatService {
	if r != nil {
		s.recorder = r
	}
	return s
}

// Generate produces an answer and a suggested action for req.
func (s *ChatService) Generate(ctx context.Context, req domain.ChatRequest) domain.ChatReply {
	ctx, span := telemetry.StartSpan(ctx, "chat.generate", telemetry.SpanAttributes{RelicID: req.RelicID})
	defer span.End()

	start := time.Now()
	relic, ok := s.relics.Get(req.RelicID)
	if !ok {
		relic = domain.UnknownRelic
	}

	log := logging.FromContext(ctx, s.logger).WithFields(logrus.Fields{
		"relic_id": req.RelicID,
		"relic":    relic.Name,
		"persona":  req.Persona,
		"style":    req.Style,
	})
	log.WithField("question", req.Question).Info("chat: question received")
	if !ok {
		log.Warn("chat: unknown relic id, using placeholder background")
	}

	reply := domain.ChatReply{Action: domain.InferAction(req.Question)}
	reply.Answer, reply.Mode = s.answer(ctx, log, relic, req)
	span.SetTag("answer_mode", string(reply.Mode))

	s.recorder.ObserveChat(reply.Mode, time.Since(start))
	return reply
}

func (s *ChatService) answer(ctx context.Context, log *logrus.Entry, relic domain.Relic, req domain.ChatRequest) (string, domain.AnswerMode) {
	if s.llm == nil {
		return OfflineAnswer(relic), domain.AnswerModeOffline
	}

	systemPrompt, err := prompt.Build(relic, req.Persona, req.Style)
	if err != nil {
		log.WithError(err).Error("chat: prompt build failed")
		return OfflineAnswer(relic), domain.AnswerModeOffline
	}

	answer, err := s.llm.Complete(ctx, systemPrompt, req.Question)
	if err == nil {
		log.WithField("answer", answer).Info("chat: model answered")
		return answer, domain.AnswerModeModel
	}

	var statusErr *llm.StatusError
	if errors.As(err, &statusErr) {
		log.WithError(err).WithField("status", statusErr.StatusCode).Error("chat: upstream returned error status")
		return DegradedAnswer(relic), domain.AnswerModeDegraded
	}

	log.WithError(err).Error("chat: upstream unavailable")
	return OfflineAnswer(relic), domain.AnswerModeOffline
}

// DegradedAnswer is returned when the upstream answered with a failure status.
func DegradedAnswer(relic domain.Relic) string {
	return fmt.Sprintf("(AI 连接微弱) 我是%s... 请稍后再试。", relic.Name)
}

// OfflineAnswer is built only from local data and is returned when the
// upstream could not be reached.
func OfflineAnswer(relic domain.Relic) string {
	return fmt.Sprintf("我是%s。%s (离线模式)", relic.Name, relic.Summary)
}
