package graph

import (
	"fmt"
)

// DefaultOwner is the owner stamped on every node when none is configured.
const DefaultOwner = "admin"

// =============================================================================
// Kind - Node and Link Discriminator
// =============================================================================

// Kind distinguishes entry nodes/links from tag nodes/links.
// The zero value is invalid and fails to encode.
type Kind int

const (
	// KindEntry marks a node built from a table row, or a link from such a
	// node to one of its tags.
	KindEntry Kind = iota + 1
	// KindTag marks a tag node, or a link from a child tag to its parent.
	KindTag
)

// Wire values of [Kind].
const (
	wireEntry = "[ENTRY]"
	wireTag   = "[TAG]"
)

// String returns the wire representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindEntry:
		return wireEntry
	case KindTag:
		return wireTag
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case KindEntry, KindTag:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("invalid kind %d", int(k))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case wireEntry:
		*k = KindEntry
	case wireTag:
		*k = KindTag
	default:
		return fmt.Errorf("unknown kind %q", b)
	}
	return nil
}

// =============================================================================
// Node, Link, Document
// =============================================================================

// Node is a vertex of the document: either an entry or a tag.
type Node struct {
	ID    string  `json:"id"`
	Owner string  `json:"user"`
	Title string  `json:"title"`
	Link  *string `json:"link"` // nil for tags and for entries without a link
	Type  Kind    `json:"type"`
}

// Link is a directed edge between two nodes.
// Entry links point from an entry to a tag; tag links point from a child tag
// to its immediate parent.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   Kind   `json:"type"`
}

// Document is the serialized graph. Nodes and links keep insertion order.
type Document struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// NewDocument returns an empty document whose slices encode as [] rather than null.
func NewDocument() *Document {
	return &Document{Nodes: []Node{}, Links: []Link{}}
}

// Node returns the first node with the given id.
func (d *Document) Node(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Stats counts nodes and links by kind.
type Stats struct {
	Entries    int
	Tags       int
	EntryLinks int
	TagLinks   int
}

// Stats returns per-kind counts for the document.
func (d *Document) Stats() Stats {
	var s Stats
	for _, n := range d.Nodes {
		switch n.Type {
		case KindEntry:
			s.Entries++
		case KindTag:
			s.Tags++
		}
	}
	for _, l := range d.Links {
		switch l.Type {
		case KindEntry:
			s.EntryLinks++
		case KindTag:
			s.TagLinks++
		}
	}
	return s
}
