package handler

import (
	"net/http"

	"github.com/sarif-mia/agency-website-sub000/internal/client"
	"github.com/sarif-mia/agency-website-sub000/internal/model"
)

// HealthReport is the data block of GET /health.
type HealthReport struct {
	Gateway string              `json:"gateway"`
	Backend string              `json:"backend"`
	Status  *model.HealthStatus `json:"backend_status,omitempty"`
}

type HealthHandler struct {
	Client *client.Client
}

func NewHealthHandler(c *client.Client) *HealthHandler {
	return &HealthHandler{Client: c}
}

// HandleHealth always answers 200 while the gateway runs; the backend state is reported in the body.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	report := HealthReport{Gateway: "ok", Backend: "up"}

	res, err := h.Client.Health.Check(r.Context())
	switch {
	case err != nil:
		report.Backend = "error"
	case res.Degraded():
		report.Backend = "unreachable"
	default:
		var status model.HealthStatus
		if res.Decode(&status) == nil {
			report.Status = &status
		}
	}

	writeJSONResponse(w, http.StatusOK, model.Response{
		Data:    report,
		Message: "Success",
	})
}
