package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/sarif-mia/agency-website-sub000/internal/client"
	"github.com/sarif-mia/agency-website-sub000/internal/config"
	"github.com/sarif-mia/agency-website-sub000/internal/forms"
	"github.com/sarif-mia/agency-website-sub000/internal/model"
	"github.com/sarif-mia/agency-website-sub000/internal/service"
)

type LeadHandler struct {
	LeadService service.LeadServiceInterface
}

func NewLeadHandler(svc service.LeadServiceInterface) *LeadHandler {
	return &LeadHandler{LeadService: svc}
}

func (h *LeadHandler) HandleContact(w http.ResponseWriter, r *http.Request) {
	handleLead(w, r, h.LeadService.SubmitContact)
}

func (h *LeadHandler) HandleQuickContact(w http.ResponseWriter, r *http.Request) {
	handleLead(w, r, h.LeadService.SubmitQuickContact)
}

func (h *LeadHandler) HandleNewsletter(w http.ResponseWriter, r *http.Request) {
	handleLead(w, r, h.LeadService.Subscribe)
}

func (h *LeadHandler) HandleMeeting(w http.ResponseWriter, r *http.Request) {
	handleLead(w, r, h.LeadService.RequestMeeting)
}

func handleLead[T any](w http.ResponseWriter, r *http.Request, submit func(context.Context, T) (*model.Submission, error)) {
	var payload T
	if err := forms.DecodeJSONBody(r, &payload); err != nil {
		writeLeadError(w, err)
		return
	}

	sub, err := submit(r.Context(), payload)
	if err != nil {
		writeLeadError(w, err)
		return
	}

	status := http.StatusCreated
	switch {
	case sub.DemoMode:
		status = http.StatusAccepted
	case !sub.Accepted:
		status = http.StatusUnprocessableEntity
	}
	message := sub.Message
	if message == "" {
		message = "Success"
	}
	writeJSONResponse(w, status, model.Response{
		Data:    sub,
		Message: message,
	})
}

func writeLeadError(w http.ResponseWriter, err error) {
	if ve, ok := forms.AsValidationError(err); ok {
		errMsg := "Validation failed"
		writeJSONResponse(w, http.StatusBadRequest, model.Response{
			Error:   &errMsg,
			Errors:  ve.Fields,
			Message: "Error",
		})
		return
	}
	if errors.Is(err, forms.ErrInvalidBody) {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if httpErr, ok := client.AsHTTPError(err); ok {
		// Client errors from the backend are the caller's; anything else is ours.
		status := http.StatusBadGateway
		if httpErr.StatusCode >= 400 && httpErr.StatusCode < 500 {
			status = httpErr.StatusCode
		}
		writeError(w, status, httpErr.Message)
		return
	}
	config.GetLogger().Errorw("Lead submission failed", "error", err)
	writeError(w, http.StatusInternalServerError, "Failed to submit form")
}
