package formatter

import (
	"bytes"

	"github.com/futig/idea-validator/internal/entity"
	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (df *DOCXFormatter) Format(ev *entity.Evaluation) ([]byte, error) {
	r := buildReport(ev)

	doc := document.New()
	defer doc.Close()

	addStyled := func(style, text string) {
		par := doc.AddParagraph()
		if style != "" {
			par.SetStyle(style)
		}
		par.AddRun().AddText(text)
	}
	addList := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		addStyled("Heading3", title)
		for _, item := range items {
			addStyled("", "• "+item)
		}
	}

	addStyled("Heading1", r.Title)
	addStyled("", r.Idea)
	addStyled("Heading2", "Overall score: "+r.OverallScore)
	if r.OverallAssessment != "" {
		addStyled("", r.OverallAssessment)
	}

	for _, s := range r.Sections {
		addStyled("Heading2", s.Title+": "+s.Score)
		addStyled("", s.Reasoning)
		addList("Strengths", s.Strengths)
		addList("Weaknesses", s.Weaknesses)
		addList("Recommendations", s.Recommendations)
	}

	if r.Footer != "" {
		doc.AddParagraph()
		addStyled("", r.Footer)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (df *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (df *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
