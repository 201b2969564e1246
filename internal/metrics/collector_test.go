package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cloo-solutions/relicguide/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollector_ObserveChat(t *testing.T) {
	c := NewCollector()

	c.ObserveChat(domain.AnswerModeModel, 200*time.Millisecond)
	c.ObserveChat(domain.AnswerModeOffline, time.Second)
	c.ObserveChat(domain.AnswerModeOffline, time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.chatAnswersTotal.WithLabelValues("model")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.chatAnswersTotal.WithLabelValues("offline")))
}

func TestCollector_ObserveVideo(t *testing.T) {
	c := NewCollector()

	c.ObserveVideo("alias")
	c.ObserveVideo("failure")

	assert.Equal(t, 1.0, testutil.ToFloat64(c.videoResolveTotal.WithLabelValues("alias")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.videoResolveTotal.WithLabelValues("failure")))
}

func TestCollector_Middleware_LabelsByRoute(t *testing.T) {
	c := NewCollector()
	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/api/relics", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/relics", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues("GET", "/api/relics", "200")))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.ObserveVideo("fallback")

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `relicguide_video_resolutions_total{outcome="fallback"} 1`)
}

func TestCollector_SetVideoLibrarySize(t *testing.T) {
	c := NewCollector()

	c.SetVideoLibrarySize(4)
	assert.Equal(t, 4.0, testutil.ToFloat64(c.videoLibraryFiles))

	c.SetVideoLibrarySize(0)
	assert.Equal(t, 0.0, testutil.ToFloat64(c.videoLibraryFiles))
}
