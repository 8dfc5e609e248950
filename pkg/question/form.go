package question

import (
	"net/url"
	"sort"
)

// Entry is a single submitted key/value pair.
type Entry struct {
	Key   string
	Value string
}

// Form is an ordered sequence of submitted key/value pairs. Duplicate keys
// are permitted and order is significant for repeated keys.
type Form []Entry

// NewForm builds a Form from explicit entries.
func NewForm(entries ...Entry) Form {
	return Form(entries)
}

// FormFromValues flattens url.Values into a Form. Keys are sorted for
// determinism; values for a repeated key keep their original order.
func FormFromValues(values url.Values) Form {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out Form
	for _, key := range keys {
		for _, value := range values[key] {
			out = append(out, Entry{Key: key, Value: value})
		}
	}
	return out
}

// Get returns the first value submitted for key.
func (f Form) Get(key string) (string, bool) {
	for _, entry := range f {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return "", false
}

// All returns every value submitted for key, in submission order.
func (f Form) All(key string) []string {
	var out []string
	for _, entry := range f {
		if entry.Key == key {
			out = append(out, entry.Value)
		}
	}
	return out
}
