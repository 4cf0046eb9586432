package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitch-predictor/internal/models"
	"github.com/yourusername/pitch-predictor/internal/predictor"
)

// Handler serves the prediction API endpoints.
type Handler struct {
	engine *predictor.Engine
	hub    *Hub
	logger *logrus.Entry
}

// NewHandler creates the API handler set. hub may be nil when the
// prediction stream is disabled.
func NewHandler(engine *predictor.Engine, hub *Hub, log *logrus.Logger) *Handler {
	return &Handler{
		engine: engine,
		hub:    hub,
		logger: log.WithField("component", "api"),
	}
}

// GetTeams returns the sorted competitor codes present in the dataset.
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	table := h.engine.Table()
	if table == nil {
		writeError(w, http.StatusServiceUnavailable, "dataset not loaded")
		return
	}
	writeJSON(w, http.StatusOK, table.Teams())
}

// GetFormats returns the canonical formats present in the dataset.
func (h *Handler) GetFormats(w http.ResponseWriter, r *http.Request) {
	table := h.engine.Table()
	if table == nil {
		writeError(w, http.StatusServiceUnavailable, "dataset not loaded")
		return
	}
	writeJSON(w, http.StatusOK, table.Formats())
}

// PostPredict computes a win-probability pair for two teams in a format.
func (h *Handler) PostPredict(w http.ResponseWriter, r *http.Request) {
	var payload predictor.Request
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req := predictor.Request{
		Team1:  strings.ToUpper(strings.TrimSpace(payload.Team1)),
		Team2:  strings.ToUpper(strings.TrimSpace(payload.Team2)),
		Format: strings.ToUpper(strings.TrimSpace(payload.Format)),
	}

	if req.Team1 == "" || req.Team2 == "" || req.Format == "" {
		writeError(w, http.StatusBadRequest, "Provide team1, team2 and format")
		return
	}

	table := h.engine.Table()
	if table == nil {
		writeError(w, http.StatusServiceUnavailable, "dataset not loaded")
		return
	}

	if !table.HasFormat(req.Format) {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Format must be one of %v", table.Formats()))
		return
	}

	if req.Team1 == req.Team2 {
		writeError(w, http.StatusBadRequest, "Pick two different teams")
		return
	}

	result, err := h.engine.Predict(r.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrTableUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "dataset not loaded")
			return
		}
		h.logger.WithError(err).Error("Prediction failed")
		writeError(w, http.StatusInternalServerError, "prediction failed")
		return
	}

	if h.hub != nil {
		h.hub.BroadcastPrediction(result)
	}

	writeJSON(w, http.StatusOK, result)
}
