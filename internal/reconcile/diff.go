package reconcile

import (
	"sort"
	"strings"

	"github.com/essentialco/ariactl/internal/aria"
	"github.com/essentialco/ariactl/internal/config"
)

// Verdict is the result of comparing one resource's desired attributes
// against its existing attributes.
type Verdict int

const (
	// VerdictConverged means the existing state already matches; no write.
	VerdictConverged Verdict = iota
	// VerdictNeedsUpdate means attributes differ and a write is required.
	VerdictNeedsUpdate
)

// TagSet is an unordered set of tags. Duplicate pairs collapse; comparison
// is set equality, never order or count.
type TagSet map[aria.Tag]struct{}

// NewTagSet builds a set from a tag slice.
func NewTagSet(tags []aria.Tag) TagSet {
	set := make(TagSet, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

// Equal reports whether both sets contain exactly the same pairs.
func (s TagSet) Equal(other TagSet) bool {
	if len(s) != len(other) {
		return false
	}
	for t := range s {
		if _, ok := other[t]; !ok {
			return false
		}
	}
	return true
}

// DiffTags compares an existing tag set against the desired one.
func DiffTags(existing, desired []aria.Tag) Verdict {
	if NewTagSet(existing).Equal(NewTagSet(desired)) {
		return VerdictConverged
	}
	return VerdictNeedsUpdate
}

// DesiredTags converts spec tags to API tags.
func DesiredTags(specs []config.TagSpec) []aria.Tag {
	tags := make([]aria.Tag, 0, len(specs))
	for _, s := range specs {
		tags = append(tags, aria.Tag{Key: s.Key, Value: s.Value})
	}
	return tags
}

// FormatTags renders tags as "k:v, k:v" in stable key order for reports.
func FormatTags(tags []aria.Tag) string {
	if len(tags) == 0 {
		return "(no tags)"
	}
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, t.Key+":"+t.Value)
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
