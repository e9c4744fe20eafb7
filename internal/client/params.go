package client

import (
	"net/url"
	"strings"
)

type Param struct {
	Key   string
	Value string
}

// Params is an ordered query string. Unlike url.Values it keeps insertion
// order, so {category, page} always encodes as category=...&page=....
type Params []Param

// Add returns p with key=value appended.
func (p Params) Add(key, value string) Params {
	return append(p, Param{Key: key, Value: value})
}

// Get returns the first value for key.
func (p Params) Get(key string) string {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value
		}
	}
	return ""
}

// Encode form-urlencodes the pairs in order.
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for i, kv := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(formEscape(kv.Key))
		b.WriteByte('=')
		b.WriteString(formEscape(kv.Value))
	}
	return b.String()
}

// formEscape is url.QueryEscape adjusted to the WHATWG form-urlencoded set
// browsers use: '*' stays literal and '~' is percent-encoded.
func formEscape(s string) string {
	escaped := url.QueryEscape(s)
	if !strings.ContainsAny(escaped, "~%") {
		return escaped
	}
	return formFixer.Replace(escaped)
}

var formFixer = strings.NewReplacer("%2A", "*", "~", "%7E")

// ParseParams parses a raw query string keeping the order of its pairs.
func ParseParams(rawQuery string) (Params, error) {
	var p Params
	for _, part := range strings.Split(rawQuery, "&") {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		k, err := url.QueryUnescape(key)
		if err != nil {
			return nil, err
		}
		v, err := url.QueryUnescape(value)
		if err != nil {
			return nil, err
		}
		p = append(p, Param{Key: k, Value: v})
	}
	return p, nil
}
