package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/cloo-solutions/relicguide/internal/domain"
	"github.com/cloo-solutions/relicguide/internal/knowledge"
	"github.com/cloo-solutions/relicguide/internal/llm"
	"github.com/cloo-solutions/relicguide/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, systemPrompt, question string) (string, error) {
	args := m.Called(ctx, systemPrompt, question)
	return args.String(0), args.Error(1)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) ObserveChat(mode domain.AnswerMode, duration time.Duration) {
	m.Called(mode, duration)
}

func (m *MockRecorder) ObserveVideo(outcome string) {
	m.Called(outcome)
}

func newTestStore(t *testing.T) *knowledge.Store {
	t.Helper()
	store, err := knowledge.NewStore(knowledge.DefaultRelics())
	require.NoError(t, err)
	return store
}

func TestChatService_Generate_ModelAnswer(t *testing.T) {
	completer := new(MockCompleter)
	svc := NewChatService(newTestStore(t), completer, logging.Discard())

	completer.On("Complete", mock.Anything, mock.MatchedBy(func(p string) bool {
		return containsAll(p, "巴渝青铜祭祀鼎", "第一人称", "小朋友")
	}), "你在哪里出土的？").Return("我在三峡出土的呀！", nil)

	reply := svc.Generate(context.Background(), domain.ChatRequest{
		RelicID:  "bronze_ding",
		Question: "你在哪里出土的？",
		Persona:  domain.PersonaChild,
		Style:    domain.StylePersonified,
	})

	assert.Equal(t, "我在三峡出土的呀！", reply.Answer)
	assert.Equal(t, domain.ActionPoint, reply.Action)
	assert.Equal(t, domain.AnswerModeModel, reply.Mode)
	completer.AssertExpectations(t)
}

func TestChatService_Generate_StatusErrorDegrades(t *testing.T) {
	completer := new(MockCompleter)
	svc := NewChatService(newTestStore(t), completer, logging.Discard())

	completer.On("Complete", mock.Anything, mock.Anything, "我要走了").
		Return("", &llm.StatusError{StatusCode: http.StatusUnauthorized, Message: "bad key"})

	reply := svc.Generate(context.Background(), domain.ChatRequest{RelicID: "rock_carving", Question: "我要走了"})

	assert.Equal(t, "(AI 连接微弱) 我是大足石刻菩萨造像... 请稍后再试。", reply.Answer)
	assert.Equal(t, domain.ActionWalk, reply.Action)
	assert.Equal(t, domain.AnswerModeDegraded, reply.Mode)
}

func TestChatService_Generate_NetworkErrorGoesOffline(t *testing.T) {
	completer := new(MockCompleter)
	svc := NewChatService(newTestStore(t), completer, logging.Discard())

	completer.On("Complete", mock.Anything, mock.Anything, "介绍一下").
		Return("", errors.Join(llm.ErrUnavailable, errors.New("dial tcp: i/o timeout")))

	reply := svc.Generate(context.Background(), domain.ChatRequest{RelicID: "boat_model", Question: "介绍一下"})

	relic, _ := newTestStore(t).Get("boat_model")
	assert.Contains(t, reply.Answer, relic.Name)
	assert.Contains(t, reply.Answer, relic.Summary)
	assert.Contains(t, reply.Answer, "离线模式")
	assert.Equal(t, domain.ActionWave, reply.Action)
	assert.Equal(t, domain.AnswerModeOffline, reply.Mode)
}

func TestChatService_Generate_EmptyCompletionGoesOffline(t *testing.T) {
	completer := new(MockCompleter)
	svc := NewChatService(newTestStore(t), completer, logging.Discard())

	completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("", llm.ErrEmptyCompletion)

	reply := svc.Generate(context.Background(), domain.ChatRequest{RelicID: "bronze_ding", Question: "?"})

	assert.Equal(t, domain.AnswerModeOffline, reply.Mode)
	assert.NotEmpty(t, reply.Answer)
}

func TestChatService_Generate_UnknownRelic(t *testing.T) {
	completer := new(MockCompleter)
	svc := NewChatService(newTestStore(t), completer, logging.Discard())

	completer.On("Complete", mock.Anything, mock.MatchedBy(func(p string) bool {
		return containsAll(p, domain.UnknownRelic.Name)
	}), "hello").Return("", errors.New("offline"))

	reply := svc.Generate(context.Background(), domain.ChatRequest{RelicID: "no_such_relic", Question: "hello"})

	assert.Contains(t, reply.Answer, domain.UnknownRelic.Name)
	assert.Equal(t, domain.ActionWave, reply.Action)
	completer.AssertExpectations(t)
}

func TestChatService_Generate_NilCompleter(t *testing.T) {
	svc := NewChatService(newTestStore(t), nil, logging.Discard())

	reply := svc.Generate(context.Background(), domain.ChatRequest{RelicID: "bronze_ding", Question: "看这里"})

	assert.Equal(t, domain.AnswerModeOffline, reply.Mode)
	assert.Equal(t, domain.ActionPoint, reply.Action)
}

func TestChatService_Generate_RecordsOutcome(t *testing.T) {
	completer := new(MockCompleter)
	recorder := new(MockRecorder)
	svc := NewChatService(newTestStore(t), completer, logging.Discard()).WithRecorder(recorder)

	completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("ok", nil)
	recorder.On("ObserveChat", domain.AnswerModeModel, mock.Anything).Return()

	svc.Generate(context.Background(), domain.ChatRequest{RelicID: "bronze_ding", Question: "q"})

	recorder.AssertExpectations(t)
}

func TestChatService_Generate_AllKnownRelics(t *testing.T) {
	store := newTestStore(t)
	for _, failure := range []error{nil, &llm.StatusError{StatusCode: 500}, llm.ErrUnavailable} {
		completer := new(MockCompleter)
		completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("answer", failure)
		svc := NewChatService(store, completer, logging.Discard())

		for _, r := range store.Summaries() {
			reply := svc.Generate(context.Background(), domain.ChatRequest{RelicID: r.ID, Question: "这是什么"})
			assert.NotEmpty(t, reply.Answer)
			assert.Contains(t, []domain.Action{domain.ActionPoint, domain.ActionWalk, domain.ActionWave}, reply.Action)
		}
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
