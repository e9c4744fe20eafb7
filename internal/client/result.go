package client

import (
	"encoding/json"

	"github.com/sarif-mia/agency-website-sub000/internal/model"
)

// Outcome classifies a call that did not end in an HTTP error.
type Outcome int

const (
	// OutcomeOK means a 2xx response with a JSON body.
	OutcomeOK Outcome = iota
	// OutcomeUnreachable means the request never got a response.
	OutcomeUnreachable
	// OutcomeInvalidBody means a 2xx response whose body was not JSON.
	OutcomeInvalidBody
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeUnreachable:
		return "unreachable"
	case OutcomeInvalidBody:
		return "invalid_body"
	default:
		return "unknown"
	}
}

// Result is the value of a call that did not fail with an HTTP status.
type Result struct {
	Outcome    Outcome
	StatusCode int
	// Body is the backend payload on success and the demo-mode fallback
	// envelope otherwise.
	Body json.RawMessage
	// Cause is the transport or decoding error behind a degraded result.
	Cause error

	shape shape
}

func (r *Result) OK() bool {
	return r != nil && r.Outcome == OutcomeOK
}

// Degraded reports a fail-soft result: the body is the demo-mode envelope.
func (r *Result) Degraded() bool {
	return r != nil && r.Outcome != OutcomeOK
}

// Decode unmarshals the raw body into v.
func (r *Result) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Envelope normalises the body to a single Results field using the shape of
// the endpoint that produced it.
func (r *Result) Envelope() (*model.Envelope, error) {
	if r.Degraded() {
		failed := false
		return &model.Envelope{
			Results:     []json.RawMessage{},
			Message:     model.DemoModeMessage,
			Success:     &failed,
			Unreachable: true,
		}, nil
	}
	return normalize(r.shape, r.Body)
}
