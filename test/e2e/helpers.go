//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cloo-solutions/relicguide/internal/api/handlers"
	"github.com/cloo-solutions/relicguide/internal/domain"
	"github.com/cloo-solutions/relicguide/internal/knowledge"
	"github.com/cloo-solutions/relicguide/internal/llm"
	"github.com/cloo-solutions/relicguide/internal/logging"
	"github.com/cloo-solutions/relicguide/internal/metrics"
	"github.com/cloo-solutions/relicguide/internal/server"
	"github.com/cloo-solutions/relicguide/internal/service"
	"github.com/cloo-solutions/relicguide/internal/storage"
	"github.com/cloo-solutions/relicguide/internal/testutil"
)

const videoBucket = "relic-videos"

// UpstreamReply configures the fake chat-completion endpoint.
type UpstreamReply struct {
	Status  int
	Content string
	Delay   time.Duration
}

// E2ETestEnv holds all resources needed for E2E tests
type E2ETestEnv struct {
	T            *testing.T
	Ctx          context.Context
	Minio        *testutil.MinioContainer
	ServerURL    string
	ServerCloser func()
	Upstream     *httptest.Server
	HTTPClient   *http.Client

	reply atomic.Pointer[UpstreamReply]
}

// SetupE2EEnv starts MinIO seeded with videos, a fake chat-completion
// upstream and the API server wired the way serve wires it.
func SetupE2EEnv(t *testing.T, videos map[string][]byte) *E2ETestEnv {
	ctx := context.Background()

	env := &E2ETestEnv{
		T:          t,
		Ctx:        ctx,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
	env.SetUpstream(UpstreamReply{Status: http.StatusOK, Content: "你好"})
	env.Upstream = httptest.NewServer(http.HandlerFunc(env.serveUpstream))

	env.Minio = testutil.NewMinioContainer(ctx, t)
	env.Minio.SeedBucket(ctx, t, videoBucket, videos)

	store, err := storage.NewS3Store(ctx, storage.S3ClientConfig{
		Endpoint:        env.Minio.Endpoint(),
		Region:          testutil.MinioRegion,
		AccessKeyID:     testutil.MinioUser,
		SecretAccessKey: testutil.MinioPassword,
		Bucket:          videoBucket,
		UsePathStyle:    true,
	})
	if err != nil {
		t.Fatalf("failed to create S3 store: %v", err)
	}
	if err := store.EnsureBucket(ctx); err != nil {
		t.Fatalf("bucket not reachable: %v", err)
	}

	port, err := getFreePort()
	if err != nil {
		t.Fatalf("failed to get free port: %v", err)
	}

	env.ServerURL, env.ServerCloser = startServer(t, store, env.Upstream.URL, port)
	return env
}

// SetUpstream changes what the fake upstream answers from now on.
func (e *E2ETestEnv) SetUpstream(r UpstreamReply) {
	e.reply.Store(&r)
}

func (e *E2ETestEnv) serveUpstream(w http.ResponseWriter, r *http.Request) {
	reply := e.reply.Load()
	if reply.Delay > 0 {
		select {
		case <-time.After(reply.Delay):
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if reply.Status != http.StatusOK {
		w.WriteHeader(reply.Status)
		_, _ = fmt.Fprintf(w, `{"error":{"message":"upstream failure","type":"server_error"}}`)
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"id":      "chatcmpl-e2e",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   "test-model",
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": reply.Content},
				"finish_reason": "stop",
			},
		},
	})
}

// Cleanup releases all resources
func (e *E2ETestEnv) Cleanup() {
	if e.ServerCloser != nil {
		e.ServerCloser()
	}
	if e.Upstream != nil {
		e.Upstream.Close()
	}
}

// Get performs a GET request and returns the status and body.
func (e *E2ETestEnv) Get(path string) (int, []byte, error) {
	return e.doRequest(http.MethodGet, path, nil)
}

// Post performs a POST request with a JSON body.
func (e *E2ETestEnv) Post(path string, body interface{}) (int, []byte, error) {
	return e.doRequest(http.MethodPost, path, body)
}

func (e *E2ETestEnv) doRequest(method, path string, body interface{}) (int, []byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, e.ServerURL+path, reqBody)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, respBody, nil
}

// DownloadFile downloads a file from the presigned URL
func (e *E2ETestEnv) DownloadFile(downloadURL string) ([]byte, error) {
	resp, err := e.HTTPClient.Get(downloadURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// startServer starts the HTTP server with all handlers
func startServer(t *testing.T, store *storage.S3Store, upstreamURL string, port int) (string, func()) {
	logger := logging.Discard()

	relics, err := knowledge.NewStore(knowledge.DefaultRelics())
	if err != nil {
		t.Fatalf("failed to build knowledge store: %v", err)
	}
	aliases, err := knowledge.NewVideoIndex(knowledge.DefaultAliases())
	if err != nil {
		t.Fatalf("failed to build alias index: %v", err)
	}

	collector := metrics.NewCollector()
	completer := llm.NewClient(llm.Config{
		APIKey:  "sk-e2e",
		BaseURL: upstreamURL,
		Model:   "test-model",
		Timeout: 500 * time.Millisecond,
	})

	chatSvc := service.NewChatService(relics, completer, logger).WithRecorder(collector)
	videoSvc := service.NewVideoService(aliases, store, service.VideoConfig{}, logger).WithRecorder(collector)

	router := server.NewRouter(server.RouterConfig{
		Logger:          logger,
		Metrics:         collector,
		ChatHandler:     handlers.NewChatHandler(chatSvc),
		VideoHandler:    handlers.NewVideoHandler(videoSvc),
		RelicHandler:    handlers.NewRelicHandler(relics),
		TeamHandler:     handlers.NewTeamHandler(domain.DefaultTeam()),
		FrontendHandler: handlers.NewFrontendHandler("", logger),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := fmt.Sprintf("http://localhost:%d", port)
	waitForServer(t, serverURL, 10*time.Second)

	return serverURL, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func waitForServer(t *testing.T, url string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("server did not start within %v", timeout)
}

func getFreePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
