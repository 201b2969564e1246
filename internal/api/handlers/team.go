package handlers

import (
	"net/http"

	"github.com/cloo-solutions/relicguide/internal/api"
	"github.com/cloo-solutions/relicguide/internal/domain"
)

type TeamHandler struct {
	team domain.Team
}

func NewTeamHandler(team domain.Team) *TeamHandler {
	return &TeamHandler{team: team}
}

func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, http.StatusOK, h.team)
}
