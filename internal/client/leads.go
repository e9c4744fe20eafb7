package client

import (
	"context"

	"github.com/sarif-mia/agency-website-sub000/internal/model"
)

type ContactAPI struct{ c *Client }

func (a *ContactAPI) SendMessage(ctx context.Context, msg model.ContactMessage) (*Result, error) {
	return a.c.post(ctx, "/contact/", msg, actionShape)
}

func (a *ContactAPI) SendQuickContact(ctx context.Context, msg model.QuickContact) (*Result, error) {
	return a.c.post(ctx, "/contact/quick/", msg, actionShape)
}

type NewsletterAPI struct{ c *Client }

// Subscribe posts {email, name}; name may be empty.
func (a *NewsletterAPI) Subscribe(ctx context.Context, email, name string) (*Result, error) {
	return a.c.post(ctx, "/newsletter/subscribe/", model.NewsletterSubscription{Email: email, Name: name}, actionShape)
}

type MeetingAPI struct{ c *Client }

func (a *MeetingAPI) ScheduleRequest(ctx context.Context, req model.MeetingRequest) (*Result, error) {
	return a.c.post(ctx, "/meetings/request/", req, actionShape)
}

// GetRequests lists meeting requests. The backend treats it as an admin view.
func (a *MeetingAPI) GetRequests(ctx context.Context) (*Result, error) {
	return a.c.get(ctx, "/meetings/", listShape)
}
