package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"billingform/internal/pkg/errors"
	"billingform/internal/platform/models"
)

type IssuanceLister interface {
	ListRecent(ctx context.Context, limit int) ([]*models.Issuance, error)
	CountByAction(ctx context.Context, since int64) ([]models.ActionCount, error)
}

type IssuanceHandler struct {
	repo IssuanceLister
}

func NewIssuanceHandler(repo IssuanceLister) *IssuanceHandler {
	return &IssuanceHandler{repo: repo}
}

func (h *IssuanceHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	issuances, err := h.repo.ListRecent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list issuances")
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to list issuances", nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"issuances": issuances})
}

// Summary counts issuances per action over the last 24 hours.
func (h *IssuanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	since := time.Now().Add(-24 * time.Hour).Unix()

	counts, err := h.repo.CountByAction(r.Context(), since)
	if err != nil {
		log.Error().Err(err).Msg("failed to count issuances")
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to count issuances", nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"since": since, "actions": counts})
}
