package handlers

import (
	"net/http"

	"billingform/internal/api/middleware"
	"billingform/internal/engine/forms"
	"billingform/internal/engine/transparent"
	"billingform/internal/pkg/errors"
)

type FormHandler struct {
	service *forms.Service
}

func NewFormHandler(service *forms.Service) *FormHandler {
	return &FormHandler{service: service}
}

// Create signs the posted parameters for the action in the path.
func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	action, err := transparent.ParseAction(routeParam(r, "action"))
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}

	var req struct {
		Params map[string]interface{} `json:"params"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	// Credentials are checked before any parameter conversion.
	if err := h.service.Ready(); err != nil {
		errors.WriteDomainError(w, err)
		return
	}

	params, err := transparent.FromMap(req.Params)
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}

	form, err := h.service.Prepare(r.Context(), forms.PrepareRequest{
		Action:   action,
		ClientID: middleware.ClientID(r),
		Params:   params,
	})
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, form)
}

// URL reports where a form for the action should post to.
func (h *FormHandler) URL(w http.ResponseWriter, r *http.Request) {
	action, err := transparent.ParseAction(routeParam(r, "action"))
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}

	u, err := h.service.URL(action)
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": u})
}

func (h *FormHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Token == "" {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "token is required", nil)
		return
	}

	v, err := h.service.Verify(r.Context(), req.Token)
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"valid":     true,
		"signature": v.Signature,
		"params":    v.Values,
	})
}
