package handlers

import (
	"context"
	"net/http"

	"github.com/cloo-solutions/relicguide/internal/api"
	"github.com/cloo-solutions/relicguide/internal/domain"
)

type ChatGenerator interface {
	Generate(ctx context.Context, req domain.ChatRequest) domain.ChatReply
}

type ChatHandler struct {
	svc ChatGenerator
}

func NewChatHandler(svc ChatGenerator) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type GenerateRequest struct {
	RelicID  string `json:"relic_id"`
	Question string `json:"question"`
	Persona  string `json:"persona"`
	Style    string `json:"style"`
}

type GenerateResponse struct {
	Answer string `json:"answer"`
	Action string `json:"action"`
}

// Generate answers a visitor question. Upstream failures are folded into the
// answer text by the service, so the only error statuses here concern the body.
func (h *ChatHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.HandleError(w, err)
		return
	}

	reply := h.svc.Generate(r.Context(), domain.ChatRequest{
		RelicID:  req.RelicID,
		Question: req.Question,
		Persona:  domain.ParsePersona(req.Persona),
		Style:    domain.ParseStyle(req.Style),
	})

	api.JSON(w, http.StatusOK, GenerateResponse{
		Answer: reply.Answer,
		Action: string(reply.Action),
	})
}
