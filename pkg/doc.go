// Package pkg provides the libraries behind taggraph.
//
// # Overview
//
// taggraph turns a table of tagged entries into a node-link graph. The pkg
// directory is organized as:
//
//  1. [table] - CSV source reader (Name, Tag, Link)
//  2. [tags] - Tag vocabulary, normalization and hierarchy expansion
//  3. [builder] - Graph construction from rows and a vocabulary
//  4. [graph] - Document model, content-hash ids and JSON codec
//  5. [pipeline] - Orchestration (initialize → read → build → persist)
//  6. [render/nodelink] - Graphviz DOT and SVG output
//  7. [cache] - Rendered diagram cache
//  8. [observability] - Build and cache event hooks
//  9. [errors] - Coded errors
//
// # Architecture
//
//	data.csv
//	    ↓
//	[table] rows ──→ [tags] vocabulary
//	    ↓                 ↓
//	      [builder] document
//	           ↓
//	[graph] output_graph.json ──→ [render/nodelink] SVG
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil)
//	result, err := runner.Run(ctx, pipeline.Options{
//	    Input:  "data.csv",
//	    Output: "output_graph.json",
//	})
//
// Or drive the stages directly:
//
//	rows, _ := table.ReadFile("data.csv")
//	vocab := tags.NewIndex(tagsOf(rows))
//	doc, _ := builder.New("admin", nil).Build(rows, vocab)
//	_ = graph.WriteFile(doc, "output_graph.json")
package pkg
