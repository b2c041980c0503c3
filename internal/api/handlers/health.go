package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"billingform/internal/engine/transparent"
)

type HealthHandler struct {
	db   *sql.DB
	site transparent.Site
}

func NewHealthHandler(db *sql.DB, site transparent.Site) *HealthHandler {
	return &HealthHandler{db: db, site: site}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	healthy := true

	if err := h.db.PingContext(r.Context()); err != nil {
		checks["database"] = "unhealthy: " + err.Error()
		healthy = false
	} else {
		checks["database"] = "healthy"
	}

	// Without a private key no form can be signed.
	if len(h.site.PrivateKey()) == 0 {
		checks["private_key"] = "unhealthy: not configured"
		healthy = false
	} else {
		checks["private_key"] = "healthy"
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !healthy {
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, struct {
		Status      string            `json:"status"`
		Environment string            `json:"environment"`
		Timestamp   int64             `json:"timestamp"`
		Checks      map[string]string `json:"checks"`
	}{
		Status:      status,
		Environment: string(h.site.Environment()),
		Timestamp:   time.Now().Unix(),
		Checks:      checks,
	})
}
