package view

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// fragmentPolicy allows the inline formatting a server may put in feedback
// and keyword text while dropping scripts, handlers and styles.
var fragmentPolicy = bluemonday.UGCPolicy()

const pageStyle = `
body { font-family: sans-serif; max-width: 860px; margin: 24px auto; }
.row { margin-bottom: 16px; }
.stats { color: #555; font-size: 13px; }
.keywords { background: #eef6ff; border: 1px solid #c9e1ff; border-radius: 8px; padding: 10px; margin-bottom: 16px; font-size: 15px; }
.results-table { border-collapse: collapse; margin-top: 12px; }
.results-table th, .results-table td { border: 1px solid #ccc; padding: 4px 8px; }
.results-row-correct { background: #e7f8ec; }
.results-row-incorrect { background: #fdecef; }
`

// SanitizeFragment cleans an untrusted HTML fragment.
func SanitizeFragment(s string) string {
	return fragmentPolicy.Sanitize(s)
}

// RenderHTML writes n as HTML.
func RenderHTML(w io.Writer, n *Node) error {
	for _, hn := range toHTML(n) {
		if err := html.Render(w, hn); err != nil {
			return fmt.Errorf("render html: %w", err)
		}
	}
	return nil
}

// HTMLString renders n to a string.
func HTMLString(n *Node) (string, error) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Document writes a complete HTML page with body as its content.
func Document(w io.Writer, title string, body *Node) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element("html", nil)
	head := element("head", nil)
	head.AppendChild(element("meta", []html.Attribute{{Key: "charset", Val: "utf-8"}}))
	titleEl := element("title", nil)
	titleEl.AppendChild(&html.Node{Type: html.TextNode, Data: title})
	head.AppendChild(titleEl)
	style := element("style", nil)
	style.AppendChild(&html.Node{Type: html.TextNode, Data: pageStyle})
	head.AppendChild(style)

	bodyEl := element("body", nil)
	for _, hn := range toHTML(body) {
		bodyEl.AppendChild(hn)
	}

	root.AppendChild(head)
	root.AppendChild(bodyEl)
	doc.AppendChild(root)

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("render document: %w", err)
	}
	return nil
}

func toHTML(n *Node) []*html.Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindText:
		return []*html.Node{{Type: html.TextNode, Data: n.Text}}
	case KindRaw:
		return rawFragment(n.Text)
	}

	attrs := make([]html.Attribute, 0, len(n.Attrs))
	for _, k := range n.SortedAttrKeys() {
		attrs = append(attrs, html.Attribute{Key: k, Val: n.Attrs[k]})
	}
	el := element(n.Tag, attrs)
	for _, c := range n.Children {
		for _, hc := range toHTML(c) {
			el.AppendChild(hc)
		}
	}
	return []*html.Node{el}
}

func rawFragment(s string) []*html.Node {
	clean := SanitizeFragment(s)
	ctx := element("div", nil)
	nodes, err := html.ParseFragment(strings.NewReader(clean), ctx)
	if err != nil {
		return []*html.Node{{Type: html.TextNode, Data: s}}
	}
	return nodes
}

func element(tag string, attrs []html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}
