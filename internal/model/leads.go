package model

import "encoding/json"

// ContactMessage is the body of POST /contact/.
type ContactMessage struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Company         string `json:"company,omitempty" validate:"omitempty,max=100"`
	Subject         string `json:"subject" validate:"required,max=200"`
	Message         string `json:"message" validate:"required"`
	MessageType     string `json:"message_type,omitempty" validate:"omitempty,oneof=general project support partnership"`
	BudgetRange     string `json:"budget_range,omitempty" validate:"omitempty,max=50"`
	ProjectTimeline string `json:"project_timeline,omitempty" validate:"omitempty,max=100"`
}

// QuickContact is the body of POST /contact/quick/.
type QuickContact struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Subject     string `json:"subject,omitempty" validate:"omitempty,max=200"`
	Message     string `json:"message" validate:"required"`
	MessageType string `json:"message_type,omitempty" validate:"omitempty,oneof=general project support partnership"`
}

// NewsletterSubscription is the body of POST /newsletter/subscribe/.
type NewsletterSubscription struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"max=100"`
}

// MeetingRequest is the body of POST /meetings/request/.
type MeetingRequest struct {
	Name               string `json:"name" validate:"required,max=100"`
	Email              string `json:"email" validate:"required,email"`
	Phone              string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Company            string `json:"company,omitempty" validate:"omitempty,max=100"`
	MeetingType        string `json:"meeting_type" validate:"required,oneof=consultation project support partnership"`
	PreferredDate      string `json:"preferred_date" validate:"required,datetime=2006-01-02"`
	PreferredTime      string `json:"preferred_time" validate:"required,oneof=09:00 10:00 11:00 14:00 15:00 16:00"`
	ProjectDescription string `json:"project_description" validate:"required"`
}

// MeetingConfirmation is the data block of a successful meeting request.
type MeetingConfirmation struct {
	ID            int    `json:"id"`
	RequestNumber string `json:"request_number"`
	Status        string `json:"status"`
	MeetingDate   string `json:"meeting_date"`
	MeetingTime   string `json:"meeting_time"`
	MeetingType   string `json:"meeting_type"`
	NextSteps     string `json:"next_steps"`
	ContactEmail  string `json:"contact_email"`
}

type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	FirstName       string `json:"first_name" validate:"required,max=150"`
	LastName        string `json:"last_name" validate:"required,max=150"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// AuthResponse is returned by /auth/register/ and /auth/login/.
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    *User  `json:"user,omitempty"`
	Token   string `json:"token,omitempty"`
}

// Submission is the outcome of a lead sent through the lead service.
type Submission struct {
	Accepted bool            `json:"accepted"`
	DemoMode bool            `json:"demo_mode"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data,omitempty"`
}
