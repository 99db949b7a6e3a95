package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/taggraph/pkg/graph"
)

// Output formats supported by the render command.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// Formats lists the supported output formats.
var Formats = []string{FormatDOT, FormatSVG}

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the owner and link of each node to its label.
	Detailed bool
}

// ToDOT converts a document to Graphviz DOT source.
// Output order follows document order, so equal documents yield equal DOT.
func ToDOT(doc *graph.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, style=filled, fillcolor=white];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range doc.Nodes {
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(n.ID), strings.Join(fmtAttrs(n, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, l := range doc.Links {
		if l.Type == graph.KindTag {
			fmt.Fprintf(&buf, "  %s -> %s [style=dashed, color=grey40];\n", quote(l.Source), quote(l.Target))
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s;\n", quote(l.Source), quote(l.Target))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n graph.Node, detailed bool) string {
	if !detailed {
		return n.Title
	}
	parts := []string{n.Title, "user: " + n.Owner}
	if n.Link != nil {
		parts = append(parts, "link: "+*n.Link)
	}
	return strings.Join(parts, "\n")
}

// dotEscaper escapes a DOT double-quoted string. Other bytes pass through
// unchanged.
var dotEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\r\n", `\n`,
	"\r", `\n`,
	"\n", `\n`,
)

func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

func fmtAttrs(n graph.Node, detailed bool) []string {
	attrs := []string{"label=" + quote(fmtLabel(n, detailed))}
	switch n.Type {
	case graph.KindTag:
		attrs = append(attrs, "shape=ellipse", "fillcolor=lightgoldenrod1")
	default:
		attrs = append(attrs, "shape=box", `style="rounded,filled"`)
		if n.Link != nil {
			attrs = append(attrs, "URL="+quote(*n.Link))
		}
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales from the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
