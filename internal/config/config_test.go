package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithEnvVars(t *testing.T) {
	t.Setenv("RELIC_PORT", "9090")
	t.Setenv("RELIC_OUTPUT_DIR", "/srv/videos")
	t.Setenv("RELIC_LLM_API_KEY", "sk-test")
	t.Setenv("RELIC_LLM_MODEL", "deepseek-ai/DeepSeek-V3")
	t.Setenv("RELIC_LLM_TIMEOUT", "3s")
	t.Setenv("RELIC_LLM_TEMPERATURE", "0.7")
	t.Setenv("RELIC_VIDEO_DELAY", "0s")
	t.Setenv("RELIC_S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("RELIC_S3_ACCESS_KEY_ID", "key")
	t.Setenv("RELIC_S3_SECRET_ACCESS_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/srv/videos", cfg.OutputDir)
	assert.Equal(t, "sk-test", cfg.LLMAPIKey)
	assert.Equal(t, "deepseek-ai/DeepSeek-V3", cfg.LLMModel)
	assert.Equal(t, 3*time.Second, cfg.LLMTimeout)
	assert.InDelta(t, 0.7, cfg.LLMTemperature, 0.0001)
	assert.Equal(t, time.Duration(0), cfg.VideoDelay)
	assert.True(t, cfg.HasS3())
	assert.True(t, cfg.HasLLM())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "images", cfg.ImagesDir)
	assert.Equal(t, "integrated_frontend.html", cfg.FrontendPath)
	assert.Equal(t, "https://api.siliconflow.cn/v1", cfg.LLMBaseURL)
	assert.Equal(t, "Qwen/Qwen2.5-72B-Instruct", cfg.LLMModel)
	assert.InDelta(t, 0.3, cfg.LLMTemperature, 0.0001)
	assert.Equal(t, 200, cfg.LLMMaxTokens)
	assert.Equal(t, 10*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 2*time.Second, cfg.VideoDelay)
	assert.Equal(t, ".mp4", cfg.VideoExt)
	assert.Equal(t, time.Minute, cfg.LibraryScanInterval)
	assert.Equal(t, "relic-videos", cfg.S3Bucket)
	assert.Equal(t, "us-east-1", cfg.S3Region)
	assert.False(t, cfg.HasSentry())
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("RELIC_LLM_TIMEOUT", "0s")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_TIMEOUT")
}

func TestLoad_Temperature(t *testing.T) {
	for _, value := range []string{"0", "-0.1", "2.5"} {
		t.Run(value, func(t *testing.T) {
			t.Setenv("RELIC_LLM_TEMPERATURE", value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "LLM_TEMPERATURE")
		})
	}
}

func TestLoad_UnparsableDuration(t *testing.T) {
	t.Setenv("RELIC_VIDEO_DELAY", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_VideoExt(t *testing.T) {
	cfg := &Config{LLMTimeout: time.Second, LLMMaxTokens: 1, LLMTemperature: 0.3, VideoExt: "mp4"}
	assert.Error(t, cfg.Validate())

	cfg.VideoExt = ".mp4"
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NegativeScanInterval(t *testing.T) {
	t.Setenv("RELIC_LIBRARY_SCAN_INTERVAL", "-1s")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "LIBRARY_SCAN_INTERVAL")
}

func TestHasS3(t *testing.T) {
	cfg := &Config{
		S3Endpoint:  "http://localhost:9000",
		S3AccessKey: "key",
		S3SecretKey: "secret",
	}
	assert.True(t, cfg.HasS3())

	cfg.S3Endpoint = ""
	assert.False(t, cfg.HasS3())
}

func TestTracesSampleRate(t *testing.T) {
	assert.Equal(t, 1.0, (&Config{Environment: "development"}).TracesSampleRate())
	assert.Equal(t, 0.1, (&Config{Environment: "production"}).TracesSampleRate())
}
