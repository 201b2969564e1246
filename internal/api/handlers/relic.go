package handlers

import (
	"net/http"

	"github.com/cloo-solutions/relicguide/internal/api"
	"github.com/cloo-solutions/relicguide/internal/domain"
)

type RelicLister interface {
	Summaries() []domain.RelicSummary
}

type RelicHandler struct {
	relics RelicLister
}

func NewRelicHandler(relics RelicLister) *RelicHandler {
	return &RelicHandler{relics: relics}
}

func (h *RelicHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries := h.relics.Summaries()
	if summaries == nil {
		summaries = []domain.RelicSummary{}
	}
	api.JSON(w, http.StatusOK, summaries)
}
