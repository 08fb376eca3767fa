package compose

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// htmlShell wraps rendered topic HTML in a minimal standalone page.
const htmlShell = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`

// RenderHTML converts a composed markdown document into a standalone
// HTML page. GFM extensions are enabled and raw HTML passes through
// unchanged; composed guides are trusted local content, not untrusted
// user input.
//
// The engine is rebuilt per call. Rendering happens once per composed
// topic, so sharing a goldmark instance is not worth the coupling.
func RenderHTML(doc *Document) ([]byte, error) {
	if doc.State != StateComposed {
		return nil, fmt.Errorf("render: document not composed (state %s)", doc.State)
	}

	engine := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	var buf bytes.Buffer

	err := engine.Convert([]byte(doc.Output), &buf)
	if err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	title := doc.Topic.Title
	if title == "" {
		title = doc.Topic.Slug
	}

	return fmt.Appendf(nil, htmlShell, title, buf.String()), nil
}
