package handlers

import (
	"net/http"

	"github.com/cloo-solutions/relicguide/internal/api"
)

func Health(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
