// Package graph provides the node-link document produced by taggraph.
//
// This package defines the canonical wire format consumed by the
// visualization front-end: a flat list of nodes and a flat list of directed
// links between them.
//
// # Document Format
//
//	{
//	  "nodes": [
//	    {"id": "7fc56270e7a70fa81a5935b72eacbe29", "user": "admin", "title": "A", "link": null, "type": "[TAG]"},
//	    {"id": "02129bb861061d1a052c592e2dc6b383", "user": "admin", "title": "X", "link": "u1", "type": "[ENTRY]"}
//	  ],
//	  "links": [
//	    {"source": "02129bb861061d1a052c592e2dc6b383", "target": "7fc56270e7a70fa81a5935b72eacbe29", "type": "[ENTRY]"}
//	  ]
//	}
//
// # Identity
//
// Node ids are content hashes of the node title (see [ID]). The same title
// always yields the same id, so rebuilding a document from the same table
// produces identical ids without any id-allocation store.
//
// # Lifecycle
//
// A document is regenerated from scratch on every build and written over the
// previous output with [WriteFile]. [Initialize] creates an empty document
// only when nothing exists at the target path.
//
// # Concurrency
//
// Documents are plain values and are not safe for concurrent mutation.
// Concurrent writers to the same path are not coordinated; the last write wins.
package graph
