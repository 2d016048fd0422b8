package formatter

import (
	"bytes"
	"fmt"
	"html"

	"github.com/futig/idea-validator/internal/entity"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const (
	htmlContentType   = "text/html; charset=utf-8"
	htmlFileExtension = ".html"

	htmlStyle = "body{font-family:-apple-system,Segoe UI,Helvetica,Arial,sans-serif;max-width:860px;margin:2rem auto;padding:0 1rem;color:#1f2937;line-height:1.5}" +
		"h1{border-bottom:2px solid #e5e7eb;padding-bottom:.4rem}h2{margin-top:2rem;color:#111827}" +
		"blockquote{margin:0;padding:.5rem 1rem;border-left:4px solid #6366f1;background:#f5f5ff}"
)

// HTMLFormatter renders the Markdown report through goldmark. Raw HTML in
// the idea or the model reply is dropped by the renderer.
type HTMLFormatter struct {
	md goldmark.Markdown
}

func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (hf *HTMLFormatter) Format(ev *entity.Evaluation) ([]byte, error) {
	r := buildReport(ev)

	var content bytes.Buffer
	if err := hf.md.Convert(renderMarkdown(r), &content); err != nil {
		return nil, fmt.Errorf("markdown convert: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<!doctype html><html><head><meta charset=\"utf-8\"><title>%s</title><style>%s</style></head><body>",
		html.EscapeString(r.Title), htmlStyle)
	buf.Write(content.Bytes())
	buf.WriteString("</body></html>\n")

	return buf.Bytes(), nil
}

func (hf *HTMLFormatter) ContentType() string {
	return htmlContentType
}

func (hf *HTMLFormatter) FileExtension() string {
	return htmlFileExtension
}
