// Package render groups the visual output formats for graph documents.
//
// The [nodelink] subpackage draws a document as a Graphviz digraph: tags as
// ellipses, entries as rounded boxes, entry links solid and tag links dashed.
package render
