// Package builder turns a table of tagged entries into a graph document.
//
// # Construction
//
// [Builder.Build] runs three passes over its inputs:
//
//  1. Tag nodes: one TAG node per vocabulary tag, in vocabulary order.
//  2. Tag links: for every tag with a parent path ("A/B" → "A") that is also
//     in the vocabulary, a TAG link from the tag to its parent. Because this
//     runs after all tag nodes exist, the vocabulary order does not matter.
//  3. Entries: one ENTRY node per distinct row title, plus an ENTRY link from
//     the entry to every registered tag in its row's hierarchy.
//
// # Identity
//
// Node ids are [graph.ID] of the title. Rows sharing a Name collapse into a
// single entry node that keeps the first row's Link; later rows still add
// links for their own tags.
package builder

import (
	"github.com/charmbracelet/log"

	tgerrors "github.com/matzehuels/taggraph/pkg/errors"
	"github.com/matzehuels/taggraph/pkg/graph"
	"github.com/matzehuels/taggraph/pkg/table"
	"github.com/matzehuels/taggraph/pkg/tags"
)

// Builder builds graph documents. The zero value is not usable; use [New].
// A Builder holds no per-build state and may be reused.
type Builder struct {
	Owner  string
	Logger *log.Logger
}

// New creates a builder stamping owner on every node.
// An empty owner falls back to [graph.DefaultOwner]; a nil logger to log.Default().
func New(owner string, logger *log.Logger) *Builder {
	if owner == "" {
		owner = graph.DefaultOwner
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{Owner: owner, Logger: logger}
}

// Build constructs the document for rows using vocab as the tag collaborator.
// It returns an ErrCodeInvalidRow error if a row has an empty Name.
func (b *Builder) Build(rows []table.Row, vocab tags.Vocabulary) (*graph.Document, error) {
	if vocab == nil {
		return nil, tgerrors.New(tgerrors.ErrCodeInternal, "nil tag vocabulary")
	}

	doc := graph.NewDocument()
	tagIDs := b.addTagNodes(doc, vocab.AllTagsWithCounts())
	b.addTagLinks(doc, tagIDs)

	seen := make(map[string]bool, len(rows))
	for i, row := range rows {
		if row.Name == "" {
			return nil, tgerrors.New(tgerrors.ErrCodeInvalidRow, "row %d: empty %s", i+1, table.ColumnName)
		}
		id := graph.ID(row.Name)
		if !seen[id] {
			seen[id] = true
			doc.Nodes = append(doc.Nodes, graph.Node{
				ID:    id,
				Owner: b.Owner,
				Title: row.Name,
				Link:  row.Link,
				Type:  graph.KindEntry,
			})
		} else {
			b.Logger.Debug("duplicate entry title", "title", row.Name, "row", i+1)
		}

		for _, t := range vocab.Expand(row.Tag) {
			tagID, ok := tagIDs.ids[t]
			if !ok {
				b.Logger.Debug("tag not in vocabulary", "tag", t, "entry", row.Name)
				continue
			}
			doc.Links = append(doc.Links, graph.Link{Source: id, Target: tagID, Type: graph.KindEntry})
		}
	}

	return doc, nil
}

// tagRegistry remembers tag ids and the order tags were registered in.
type tagRegistry struct {
	ids   map[string]string
	order []string
}

func (b *Builder) addTagNodes(doc *graph.Document, counts []tags.Count) tagRegistry {
	reg := tagRegistry{ids: make(map[string]string, len(counts))}
	for _, c := range counts {
		if _, dup := reg.ids[c.Tag]; dup {
			continue
		}
		id := graph.ID(c.Tag)
		reg.ids[c.Tag] = id
		reg.order = append(reg.order, c.Tag)
		doc.Nodes = append(doc.Nodes, graph.Node{
			ID:    id,
			Owner: b.Owner,
			Title: c.Tag,
			Type:  graph.KindTag,
		})
	}
	return reg
}

func (b *Builder) addTagLinks(doc *graph.Document, reg tagRegistry) {
	for _, t := range reg.order {
		parent, ok := tags.Parent(t)
		if !ok {
			continue
		}
		parentID, ok := reg.ids[parent]
		if !ok {
			b.Logger.Debug("parent tag not in vocabulary", "tag", t, "parent", parent)
			continue
		}
		doc.Links = append(doc.Links, graph.Link{Source: reg.ids[t], Target: parentID, Type: graph.KindTag})
	}
}
