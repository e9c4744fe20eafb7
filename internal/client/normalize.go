package client

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sarif-mia/agency-website-sub000/internal/model"
)

type shapeKind int

const (
	kindAuto shapeKind = iota
	// kindList: bare array, paginated {results: [...]} or {data: [...]}.
	kindList
	// kindDetail: one object is one record.
	kindDetail
	// kindAction: {success, message, data?} from POST endpoints.
	kindAction
	// kindKeyed: the records live under a named array field.
	kindKeyed
)

// shape tells normalize where the records of an endpoint live.
type shape struct {
	kind shapeKind
	key  string
}

var (
	autoShape       = shape{kind: kindAuto}
	listShape       = shape{kind: kindList}
	detailShape     = shape{kind: kindDetail}
	actionShape     = shape{kind: kindAction}
	categoriesShape = shape{kind: kindKeyed, key: "categories"}
)

func normalize(s shape, body []byte) (*model.Envelope, error) {
	env := &model.Envelope{Results: []json.RawMessage{}}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return env, nil
	}

	switch trimmed[0] {
	case '[':
		items, err := decodeArray(trimmed)
		if err != nil {
			return nil, err
		}
		env.Results = items
		return env, nil
	case '{':
	default:
		env.Results = append(env.Results, json.RawMessage(trimmed))
		return env, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}
	readMeta(obj, env)

	kind := s.kind
	if kind == kindAuto {
		kind = detect(obj)
	}

	switch kind {
	case kindList:
		for _, key := range []string{"results", "data"} {
			if raw, ok := obj[key]; ok && isArray(raw) {
				items, err := decodeArray(raw)
				if err != nil {
					return nil, err
				}
				env.Results = items
				break
			}
		}
	case kindKeyed:
		if raw, ok := obj[s.key]; ok && isArray(raw) {
			items, err := decodeArray(raw)
			if err != nil {
				return nil, err
			}
			env.Results = items
		}
	case kindAction:
		raw, ok := obj["data"]
		switch {
		case !ok:
			env.Results = append(env.Results, json.RawMessage(trimmed))
		case isArray(raw):
			items, err := decodeArray(raw)
			if err != nil {
				return nil, err
			}
			env.Results = items
		case !isNull(raw):
			env.Results = append(env.Results, raw)
		}
	default:
		env.Results = append(env.Results, json.RawMessage(trimmed))
	}
	return env, nil
}

func detect(obj map[string]json.RawMessage) shapeKind {
	if raw, ok := obj["results"]; ok && isArray(raw) {
		return kindList
	}
	if _, ok := obj["data"]; ok {
		return kindAction
	}
	return kindDetail
}

func readMeta(obj map[string]json.RawMessage, env *model.Envelope) {
	if raw, ok := obj["message"]; ok {
		_ = json.Unmarshal(raw, &env.Message)
	}
	if raw, ok := obj["success"]; ok {
		var b bool
		if err := json.Unmarshal(raw, &b); err == nil {
			env.Success = &b
		}
	}
	if raw, ok := obj["count"]; ok {
		_ = json.Unmarshal(raw, &env.Count)
	}
	if raw, ok := obj["next"]; ok {
		_ = json.Unmarshal(raw, &env.Next)
	}
	if raw, ok := obj["previous"]; ok {
		_ = json.Unmarshal(raw, &env.Previous)
	}
}

func decodeArray(raw json.RawMessage) ([]json.RawMessage, error) {
	items := []json.RawMessage{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decoding records: %w", err)
	}
	return items, nil
}

func isArray(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && t[0] == '['
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
