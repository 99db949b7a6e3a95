// Package nodelink renders graph documents as node-link diagrams.
//
// # Overview
//
// This package converts a [graph.Document] to Graphviz DOT and renders it to
// SVG in-process. It gives a quick static preview of the document that the
// interactive front-end would otherwise display.
//
// # Usage
//
//	dot := nodelink.ToDOT(doc, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Styling
//
// Tags are drawn as ellipses and entries as rounded boxes. Entry→tag links are
// solid; child→parent tag links are dashed. Node titles are used as labels;
// node ids (content hashes) are only used as DOT identifiers.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
