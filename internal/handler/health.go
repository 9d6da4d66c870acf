package handler

import (
	"net/http"
)

// databasePinger is the slice of the sqlite.DB surface the health
// check needs.
type databasePinger interface {
	Ping() error
}

type serviceStatus struct {
	Status string `json:"status"`
}

type healthPayload struct {
	Status            string                   `json:"status"`
	AvailableVersions []string                 `json:"availableVersions"`
	Services          map[string]serviceStatus `json:"services"`
}

// HealthHandler reports API liveness and the health of its backing
// services.
type HealthHandler struct {
	db databasePinger
}

// NewHealthHandler creates a HealthHandler backed by the given
// database.
func NewHealthHandler(db databasePinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// HandleHealth answers GET /health. It returns 200 while the database
// is reachable and 503 otherwise; the payload lists the API versions
// this server speaks either way.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	payload := healthPayload{
		Status:            "ok",
		AvailableVersions: []string{"v1", "v2"},
		Services: map[string]serviceStatus{
			"database": {Status: "ok"},
		},
	}

	status := http.StatusOK
	if err := h.db.Ping(); err != nil {
		payload.Status = "degraded"
		payload.Services["database"] = serviceStatus{Status: "unavailable"}
		status = http.StatusServiceUnavailable
	}

	writeData(w, status, "", payload)
}
