package params

import (
	"net/url"
)

// Values is a set of request parameters, keyed by name
// It's used for caller overrides, provider defaults and the parameters sent to a provider
type Values map[string]string

const (
	themeKey = "theme"
	queryKey = "query"
)

// Build merges the provider defaults with the caller overrides
// Overrides take precedence over defaults, and a non-empty theme override is also set as the search query
// Neither of the inputs are modified
func Build(defaults Values, overrides Values) Values {
	params := defaults.Clone()

	for key, value := range overrides {
		params[key] = value
	}

	if theme := overrides[themeKey]; theme != "" {
		params[queryKey] = theme
	}

	return params
}

// FromQuery converts url query parameters into Values, using the first value for repeated keys
func FromQuery(query url.Values) Values {
	values := make(Values, len(query))
	for key := range query {
		values[key] = query.Get(key)
	}

	return values
}

// Clone returns a copy of the values
func (v Values) Clone() Values {
	clone := make(Values, len(v))
	for key, value := range v {
		clone[key] = value
	}

	return clone
}

// Has returns whether the key is present, regardless of its value
func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// GetDefault returns the value for the key, or the fallback if the key isn't present
func (v Values) GetDefault(key, fallback string) string {
	if value, ok := v[key]; ok {
		return value
	}

	return fallback
}
