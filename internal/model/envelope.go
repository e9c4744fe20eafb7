package model

import "encoding/json"

// DemoModeMessage is the message carried by the synthetic fallback envelope.
const DemoModeMessage = "Backend not available - using demo mode"

// FallbackEnvelope is the wire shape returned when the backend cannot be reached.
type FallbackEnvelope struct {
	Results []json.RawMessage `json:"results"`
	Data    []json.RawMessage `json:"data"`
	Message string            `json:"message"`
	Success bool              `json:"success"`
}

// NewFallbackEnvelope builds {results: [], data: [], message, success: false}.
func NewFallbackEnvelope() FallbackEnvelope {
	return FallbackEnvelope{
		Results: []json.RawMessage{},
		Data:    []json.RawMessage{},
		Message: DemoModeMessage,
		Success: false,
	}
}

// Envelope is a backend response normalised to a single record field.
type Envelope struct {
	Results     []json.RawMessage `json:"results"`
	Message     string            `json:"message,omitempty"`
	Success     *bool             `json:"success,omitempty"`
	Count       int               `json:"count,omitempty"`
	Next        string            `json:"next,omitempty"`
	Previous    string            `json:"previous,omitempty"`
	Unreachable bool              `json:"unreachable,omitempty"`
}

// Empty reports whether the envelope holds no records.
func (e *Envelope) Empty() bool {
	return e == nil || len(e.Results) == 0
}

// Succeeded is false only when the backend said success=false or was unreachable.
func (e *Envelope) Succeeded() bool {
	if e == nil || e.Unreachable {
		return false
	}
	return e.Success == nil || *e.Success
}

// DecodeResults unmarshals every record into T, keeping server order.
func DecodeResults[T any](e *Envelope) ([]T, error) {
	if e == nil {
		return nil, nil
	}
	out := make([]T, 0, len(e.Results))
	for _, raw := range e.Results {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
