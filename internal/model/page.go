package model

import "encoding/json"

// Source tells where the records of a Page came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceSnapshot Source = "snapshot"
	SourceSample   Source = "sample"
	SourceEmpty    Source = "empty"
)

// Page is content ready for rendering, whatever the state of the backend.
type Page struct {
	Resource string            `json:"resource"`
	Items    []json.RawMessage `json:"items"`
	Source   Source            `json:"source"`
	Message  string            `json:"message,omitempty"`
}
