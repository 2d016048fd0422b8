package formatter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/futig/idea-validator/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(ev *entity.Evaluation) ([]byte, error) {
	return renderMarkdown(buildReport(ev)), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}

// RenderMarkdown returns the Markdown report of ev
func RenderMarkdown(ev *entity.Evaluation) string {
	return string(renderMarkdown(buildReport(ev)))
}

func renderMarkdown(r report) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", r.Title)
	fmt.Fprintf(&buf, "> %s\n\n", strings.ReplaceAll(r.Idea, "\n", "\n> "))
	fmt.Fprintf(&buf, "**Overall score:** %s\n\n", r.OverallScore)
	if r.OverallAssessment != "" {
		fmt.Fprintf(&buf, "%s\n\n", r.OverallAssessment)
	}

	for _, s := range r.Sections {
		fmt.Fprintf(&buf, "## %s: %s\n\n", s.Title, s.Score)
		fmt.Fprintf(&buf, "%s\n\n", s.Reasoning)
		writeMarkdownList(&buf, "Strengths", s.Strengths)
		writeMarkdownList(&buf, "Weaknesses", s.Weaknesses)
		writeMarkdownList(&buf, "Recommendations", s.Recommendations)
	}

	if r.Footer != "" {
		fmt.Fprintf(&buf, "---\n\n_%s_\n", r.Footer)
	}

	return buf.Bytes()
}

func writeMarkdownList(buf *bytes.Buffer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(buf, "### %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(buf, "- %s\n", item)
	}
	buf.WriteString("\n")
}
