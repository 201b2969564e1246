package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/cloo-solutions/relicguide/internal/api"
	"github.com/cloo-solutions/relicguide/internal/domain"
)

type VideoResolver interface {
	Resolve(ctx context.Context, text string) (*domain.AssetReference, error)
}

type VideoHandler struct {
	svc VideoResolver
}

func NewVideoHandler(svc VideoResolver) *VideoHandler {
	return &VideoHandler{svc: svc}
}

type GenerateVideoRequest struct {
	Text string `json:"text"`
}

type GenerateVideoResponse struct {
	Success  bool   `json:"success"`
	VideoURL string `json:"video_url,omitempty"`
	FileSize string `json:"fileSize,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// GenerateVideo resolves free text to a servable video. An empty library is
// reported in-band with success=false rather than as an HTTP error.
func (h *VideoHandler) GenerateVideo(w http.ResponseWriter, r *http.Request) {
	var req GenerateVideoRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.HandleError(w, err)
		return
	}

	ref, err := h.svc.Resolve(r.Context(), req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrNoLocalVideo) {
			api.JSON(w, http.StatusOK, GenerateVideoResponse{
				Success: false,
				Error:   domain.ErrNoLocalVideo.Message,
			})
			return
		}
		api.JSON(w, http.StatusInternalServerError, GenerateVideoResponse{
			Success: false,
			Error:   "video lookup failed",
		})
		return
	}

	api.JSON(w, http.StatusOK, GenerateVideoResponse{
		Success:  true,
		VideoURL: ref.URL,
		FileSize: ref.SizeHint,
		Message:  ref.Message,
	})
}
