package handlers

import (
	"errors"
	"io/fs"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
)

// FrontendHandler serves the single-page HTML front end from disk. The file is
// read per request so it can be replaced without a restart.
type FrontendHandler struct {
	path   string
	logger *logrus.Logger
}

func NewFrontendHandler(path string, logger *logrus.Logger) *FrontendHandler {
	return &FrontendHandler{path: path, logger: logger}
}

func (h *FrontendHandler) Serve(w http.ResponseWriter, r *http.Request) {
	if h.path == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	body, err := os.ReadFile(h.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			h.logger.WithError(err).WithField("path", h.path).Error("frontend: read failed")
		}
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
