package params

import (
	"net/url"
	"sort"
	"strings"
)

// Utilities for building a URL with query params

// BuildQuery builds a query parameter string for the given values, sorted by key
// It differs from the stdlib url.Values.Encode in that it encodes query parameters with an empty value as "?key" instead of "?key="
func BuildQuery(v Values) string {
	var buf strings.Builder

	for _, key := range v.Keys() {
		value := v[key]

		if value != "" {
			addQueryParam(&buf, url.QueryEscape(key)+"="+url.QueryEscape(value))
		} else {
			addQueryParam(&buf, url.QueryEscape(key))
		}
	}

	return buf.String()
}

// Keys returns the keys of the values in sorted order
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}

	sort.Strings(keys)
	return keys
}

// addQueryParam adds a query parameter to a string builder
func addQueryParam(buf *strings.Builder, param string) {
	if buf.Len() > 0 {
		buf.WriteByte('&')
	} else {
		buf.WriteByte('?')
	}

	buf.WriteString(param)
}
