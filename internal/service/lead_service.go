package service

import (
	"context"
	"encoding/json"

	"github.com/sarif-mia/agency-website-sub000/internal/client"
	"github.com/sarif-mia/agency-website-sub000/internal/config"
	"github.com/sarif-mia/agency-website-sub000/internal/forms"
	"github.com/sarif-mia/agency-website-sub000/internal/model"
	"go.uber.org/zap"
)

type LeadServiceInterface interface {
	SubmitContact(ctx context.Context, msg model.ContactMessage) (*model.Submission, error)
	SubmitQuickContact(ctx context.Context, msg model.QuickContact) (*model.Submission, error)
	Subscribe(ctx context.Context, sub model.NewsletterSubscription) (*model.Submission, error)
	RequestMeeting(ctx context.Context, req model.MeetingRequest) (*model.Submission, error)
}

// LeadService validates lead forms and forwards them to the backend.
type LeadService struct {
	Client *client.Client
	logger *zap.SugaredLogger
}

func NewLeadService(c *client.Client) *LeadService {
	return &LeadService{
		Client: c,
		logger: config.GetLogger(),
	}
}

func (s *LeadService) SubmitContact(ctx context.Context, msg model.ContactMessage) (*model.Submission, error) {
	if err := forms.Validate(msg); err != nil {
		return nil, err
	}
	return s.submit("contact", func() (*client.Result, error) { return s.Client.Contact.SendMessage(ctx, msg) })
}

func (s *LeadService) SubmitQuickContact(ctx context.Context, msg model.QuickContact) (*model.Submission, error) {
	if err := forms.Validate(msg); err != nil {
		return nil, err
	}
	return s.submit("quick-contact", func() (*client.Result, error) { return s.Client.Contact.SendQuickContact(ctx, msg) })
}

func (s *LeadService) Subscribe(ctx context.Context, sub model.NewsletterSubscription) (*model.Submission, error) {
	if err := forms.Validate(sub); err != nil {
		return nil, err
	}
	return s.submit("newsletter", func() (*client.Result, error) { return s.Client.Newsletter.Subscribe(ctx, sub.Email, sub.Name) })
}

func (s *LeadService) RequestMeeting(ctx context.Context, req model.MeetingRequest) (*model.Submission, error) {
	if err := forms.Validate(req); err != nil {
		return nil, err
	}
	return s.submit("meeting", func() (*client.Result, error) { return s.Client.Meeting.ScheduleRequest(ctx, req) })
}

func (s *LeadService) submit(kind string, send func() (*client.Result, error)) (*model.Submission, error) {
	res, err := send()
	if err != nil {
		s.logger.Warnw("Lead rejected by backend", "kind", kind, "error", err)
		return nil, err
	}
	if res.Degraded() {
		s.logger.Infow("Lead not delivered, backend unavailable", "kind", kind)
		return &model.Submission{
			Accepted: false,
			DemoMode: true,
			Message:  model.DemoModeMessage,
		}, nil
	}

	var body struct {
		Success *bool           `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := res.Decode(&body); err != nil {
		// A 2xx without the action envelope still means the lead was stored.
		return &model.Submission{Accepted: true}, nil
	}
	sub := &model.Submission{
		Accepted: body.Success == nil || *body.Success,
		Message:  body.Message,
	}
	if len(body.Data) > 0 && string(body.Data) != "null" {
		sub.Data = body.Data
	}
	return sub, nil
}
