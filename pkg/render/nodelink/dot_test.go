package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/taggraph/pkg/graph"
)

func strPtr(s string) *string { return &s }

func sampleDoc() *graph.Document {
	return &graph.Document{
		Nodes: []graph.Node{
			{ID: graph.ID("A"), Owner: "admin", Title: "A", Type: graph.KindTag},
			{ID: graph.ID("A/B"), Owner: "admin", Title: "A/B", Type: graph.KindTag},
			{ID: graph.ID("X"), Owner: "admin", Title: "X", Link: strPtr("https://x.test"), Type: graph.KindEntry},
		},
		Links: []graph.Link{
			{Source: graph.ID("A/B"), Target: graph.ID("A"), Type: graph.KindTag},
			{Source: graph.ID("X"), Target: graph.ID("A/B"), Type: graph.KindEntry},
		},
	}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(sampleDoc(), Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, `label="A/B"`) {
		t.Error("ToDOT() should label nodes by title")
	}
	edge := `"` + graph.ID("X") + `" -> "` + graph.ID("A/B") + `";`
	if !strings.Contains(dot, edge) {
		t.Errorf("ToDOT() missing entry edge %s", edge)
	}
	tagEdge := `"` + graph.ID("A/B") + `" -> "` + graph.ID("A") + `" [style=dashed`
	if !strings.Contains(dot, tagEdge) {
		t.Errorf("ToDOT() tag edge should be dashed")
	}
	if !strings.Contains(dot, `URL="https://x.test"`) {
		t.Error("ToDOT() entry should carry its link as URL")
	}
}

func TestToDOT_Deterministic(t *testing.T) {
	if ToDOT(sampleDoc(), Options{}) != ToDOT(sampleDoc(), Options{}) {
		t.Error("ToDOT() should be deterministic")
	}
}

func TestFmtLabel(t *testing.T) {
	n := graph.Node{Title: "X", Owner: "admin", Link: strPtr("u1"), Type: graph.KindEntry}

	if got := fmtLabel(n, false); got != "X" {
		t.Errorf("fmtLabel() simple = %q, want X", got)
	}
	got := fmtLabel(n, true)
	if !strings.Contains(got, "user: admin") || !strings.Contains(got, "link: u1") {
		t.Errorf("fmtLabel() detailed = %q", got)
	}

	tag := graph.Node{Title: "A", Owner: "admin", Type: graph.KindTag}
	if strings.Contains(fmtLabel(tag, true), "link:") {
		t.Error("fmtLabel() should omit link for tags")
	}
}

func TestToDOT_QuotesTitles(t *testing.T) {
	doc := &graph.Document{Nodes: []graph.Node{
		{ID: graph.ID(`say "hi"`), Title: `say "hi"`, Type: graph.KindEntry},
	}}
	if !strings.Contains(ToDOT(doc, Options{}), `label="say \"hi\""`) {
		t.Error("ToDOT() should escape quotes in titles")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.50 200.25"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.50 200.25"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if !strings.Contains(out, `width="100"`) {
		t.Errorf("normalizeViewBox() width = %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("normalizeViewBox() should leave SVG without viewBox untouched")
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "A/B", `"A/B"`},
		{"quote", `say "hi"`, `"say \"hi\""`},
		{"backslash", `C:\dir`, `"C:\\dir"`},
		{"newline", "a\nb", `"a\nb"`},
		{"crlf", "a\r\nb", `"a\nb"`},
		{"tab", "a\tb", "\"a\tb\""},
		{"control", "a\x01b", "\"a\x01b\""},
		{"unicode", "Çafé", `"Çafé"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quote(tt.in); got != tt.want {
				t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestToDOT_EscapesSpecialTitles(t *testing.T) {
	title := "a\\b \"c\"\td\ne"
	doc := &graph.Document{Nodes: []graph.Node{
		{ID: graph.ID(title), Title: title, Link: strPtr(`https://x.test/?q="1"`), Type: graph.KindEntry},
	}}
	dot := ToDOT(doc, Options{})

	if !strings.Contains(dot, "label=\"a\\\\b \\\"c\\\"\td\\ne\"") {
		t.Errorf("ToDOT() label not DOT-escaped:\n%s", dot)
	}
	if !strings.Contains(dot, `URL="https://x.test/?q=\"1\""`) {
		t.Errorf("ToDOT() URL not DOT-escaped:\n%s", dot)
	}
	if strings.Contains(dot, `\t`) || strings.Contains(dot, `\x`) {
		t.Errorf("ToDOT() should not emit Go escapes:\n%s", dot)
	}
}

func TestToDOT_DetailedLabelUsesDOTNewline(t *testing.T) {
	n := graph.Node{ID: graph.ID("X"), Title: "X", Owner: "admin", Type: graph.KindTag}
	dot := ToDOT(&graph.Document{Nodes: []graph.Node{n}}, Options{Detailed: true})
	if !strings.Contains(dot, `label="X\nuser: admin"`) {
		t.Errorf("ToDOT() detailed label = \n%s", dot)
	}
}
