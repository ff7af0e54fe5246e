package cache

import (
	"slices"
	"strings"
)

// ListID is the sentinel tag id meaning "the entire collection".
const ListID = "LIST"

// Tag is an invalidation label of shape (type, id).
type Tag struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// ItemTag labels a single record.
func ItemTag(typ, id string) Tag {
	return Tag{Type: typ, ID: id}
}

// ListTag labels every list-shaped result of a type.
func ListTag(typ string) Tag {
	return Tag{Type: typ, ID: ListID}
}

// IsList reports whether t is the LIST sentinel.
func (t Tag) IsList() bool {
	return t.ID == ListID
}

func (t Tag) String() string {
	return t.Type + ":" + t.ID
}

// Key identifies one cached read: the operation name and its argument.
// Arg must be a stable encoding of the argument ("" for none).
type Key struct {
	Op  string `json:"op"`
	Arg string `json:"arg,omitempty"`
}

func (k Key) String() string {
	return k.Op + "(" + k.Arg + ")"
}

func compareKeys(a, b Key) int {
	if c := strings.Compare(a.Op, b.Op); c != 0 {
		return c
	}
	return strings.Compare(a.Arg, b.Arg)
}

func sortKeys(keys []Key) {
	slices.SortFunc(keys, compareKeys)
}

// dedupeTags drops repeated tags, keeping first occurrence order.
func dedupeTags(tags []Tag) []Tag {
	if len(tags) < 2 {
		return tags
	}
	seen := make(map[Tag]struct{}, len(tags))
	out := tags[:0:0]
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
