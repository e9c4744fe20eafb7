// Package sample holds the demo records shown when neither the backend nor a
// snapshot can provide content.
package sample

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
)

//go:embed data/*.json
var files embed.FS

var (
	loadOnce sync.Once
	records  map[string][]json.RawMessage
)

func load() {
	loadOnce.Do(func() {
		records = make(map[string][]json.RawMessage)
		entries, err := files.ReadDir("data")
		if err != nil {
			panic(fmt.Sprintf("sample: reading embedded data: %v", err))
		}
		for _, e := range entries {
			b, err := files.ReadFile(path.Join("data", e.Name()))
			if err != nil {
				panic(fmt.Sprintf("sample: reading %s: %v", e.Name(), err))
			}
			var items []json.RawMessage
			if err := json.Unmarshal(b, &items); err != nil {
				panic(fmt.Sprintf("sample: decoding %s: %v", e.Name(), err))
			}
			records[strings.TrimSuffix(e.Name(), ".json")] = items
		}
	})
}

// Resources lists the resources that have sample records.
func Resources() []string {
	load()
	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns every sample record of resource. The second value is false
// when the resource has no sample data.
func List(resource string) ([]json.RawMessage, bool) {
	load()
	items, ok := records[resource]
	if !ok {
		return nil, false
	}
	out := make([]json.RawMessage, len(items))
	copy(out, items)
	return out, true
}

// Filter returns the records of resource whose field equals value, ignoring
// case. Booleans and numbers compare by their JSON text, so is_featured
// matches "true".
func Filter(resource, field, value string) []json.RawMessage {
	items, _ := List(resource)
	out := []json.RawMessage{}
	for _, item := range items {
		if v, ok := fieldText(item, field); ok && strings.EqualFold(v, value) {
			out = append(out, item)
		}
	}
	return out
}

// Find returns the record of resource with the given slug.
func Find(resource, slug string) (json.RawMessage, bool) {
	items, _ := List(resource)
	for _, item := range items {
		if v, ok := fieldText(item, "slug"); ok && v == slug {
			return item, true
		}
	}
	return nil, false
}

func fieldText(item json.RawMessage, field string) (string, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(item, &obj); err != nil {
		return "", false
	}
	raw, ok := obj[field]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	return strings.TrimSpace(string(raw)), true
}
