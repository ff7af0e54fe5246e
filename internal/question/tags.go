package question

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tags is the normalized, ordered tag list of a question.
//
// Stored and transported forms differ (a comma-joined string in SQLite and
// in form input, a list in JSON and YAML) but every constructor in this
// package yields the same normalized value: trimmed, no empty entries,
// original order kept.
type Tags []string

// ParseTags splits a comma-joined tag string.
//
//	ParseTags(" React, ,Redux ") // Tags{"React", "Redux"}
func ParseTags(s string) Tags {
	if strings.TrimSpace(s) == "" {
		return Tags{}
	}
	return NormalizeTags(strings.Split(s, ","))
}

// NormalizeTags trims each entry and drops empty ones.
func NormalizeTags(in []string) Tags {
	out := make(Tags, 0, len(in))
	for _, tag := range in {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// String joins tags for display ("React, Redux").
func (t Tags) String() string {
	return strings.Join(t, ", ")
}

// Joined is the storage form ("React,Redux").
func (t Tags) Joined() string {
	return strings.Join(t, ",")
}

// Clone returns an independent copy; nil stays nil.
func (t Tags) Clone() Tags {
	if t == nil {
		return nil
	}
	out := make(Tags, len(t))
	copy(out, t)
	return out
}

// Equal compares two tag lists element by element.
func (t Tags) Equal(other Tags) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if t[i] != other[i] {
			return false
		}
	}
	return true
}

// MarshalJSON always emits a list, never null.
func (t Tags) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}

// UnmarshalJSON accepts "a,b" or ["a","b"].
func (t *Tags) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = ParseTags(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("tags: expected string or list of strings: %w", err)
	}
	*t = NormalizeTags(list)
	return nil
}

// UnmarshalYAML accepts a scalar "a, b" or a sequence.
func (t *Tags) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*t = Tags{}
			return nil
		}
		*t = ParseTags(value.Value)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return fmt.Errorf("tags: %w", err)
		}
		*t = NormalizeTags(list)
		return nil
	default:
		return fmt.Errorf("tags: line %d: expected string or list", value.Line)
	}
}
