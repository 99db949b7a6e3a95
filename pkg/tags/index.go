package tags

// Index is a vocabulary built from the raw tag values of a table.
//
// Every hierarchical segment of every tag becomes a vocabulary entry.
// Tags are enumerated in first-seen order, and a tag's parents are always
// enumerated before it.
type Index struct {
	order  []string
	counts map[string]int
}

// NewIndex builds an index from raw tag values, one per entry.
// Empty tags are ignored.
func NewIndex(raw []string) *Index {
	idx := &Index{counts: make(map[string]int)}
	for _, r := range raw {
		idx.add(r)
	}
	return idx
}

func (x *Index) add(raw string) {
	for _, t := range Expand(raw) {
		if _, ok := x.counts[t]; !ok {
			x.order = append(x.order, t)
		}
		x.counts[t]++
	}
}

// AllTagsWithCounts implements [Vocabulary].
func (x *Index) AllTagsWithCounts() []Count {
	out := make([]Count, len(x.order))
	for i, t := range x.order {
		out[i] = Count{Tag: t, N: x.counts[t]}
	}
	return out
}

// Expand implements [Vocabulary].
func (x *Index) Expand(tag string) []string { return Expand(tag) }

// Count returns the number of entries whose hierarchy includes tag.
func (x *Index) Count(tag string) int { return x.counts[Normalize(tag)] }

// Len returns the number of distinct tags.
func (x *Index) Len() int { return len(x.order) }

// List is a vocabulary enumerated in the caller's order.
// Tags are normalized so that they match what [Expand] yields; empty tags
// are dropped. Counts are left at zero.
type List []string

// AllTagsWithCounts implements [Vocabulary].
func (l List) AllTagsWithCounts() []Count {
	out := make([]Count, 0, len(l))
	for _, t := range l {
		if t = Normalize(t); t != "" {
			out = append(out, Count{Tag: t})
		}
	}
	return out
}

// Expand implements [Vocabulary].
func (l List) Expand(tag string) []string { return Expand(tag) }

var (
	_ Vocabulary = (*Index)(nil)
	_ Vocabulary = List(nil)
)
