package tags

import "strings"

// Separator splits a tag path into segments.
const Separator = "/"

// Count is a tag path and the number of entries whose hierarchy includes it.
type Count struct {
	Tag string
	N   int
}

// Vocabulary supplies the tag set and tag hierarchies for a build.
type Vocabulary interface {
	// AllTagsWithCounts returns every distinct tag path with its count.
	AllTagsWithCounts() []Count
	// Expand returns the prefix paths of tag from least to most specific,
	// including the tag itself.
	Expand(tag string) []string
}

// Normalize trims each segment of tag and drops empty segments.
func Normalize(tag string) string {
	return strings.Join(segments(tag), Separator)
}

// Expand returns the hierarchy of tag: "A/B/C" → ["A", "A/B", "A/B/C"].
// The tag is normalized first. Returns nil for an empty tag.
func Expand(tag string) []string {
	segs := segments(tag)
	if len(segs) == 0 {
		return nil
	}
	out := make([]string, len(segs))
	for i := range segs {
		out[i] = strings.Join(segs[:i+1], Separator)
	}
	return out
}

// Parent returns the path of tag without its last segment.
// It reports false for top-level and empty tags.
func Parent(tag string) (string, bool) {
	i := strings.LastIndex(tag, Separator)
	if i < 0 {
		return "", false
	}
	return tag[:i], true
}

func segments(tag string) []string {
	parts := strings.Split(tag, Separator)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
