package formatter

import (
	"fmt"

	"github.com/futig/idea-validator/internal/entity"
	"github.com/google/uuid"
)

const baseTitle = "Business Idea Evaluation"

// Formatter renders an evaluation into a downloadable report
type Formatter interface {
	Format(ev *entity.Evaluation) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ReportFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatHTML:
		return NewHTMLFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidFormat, format)
	}
}

// Filename returns the attachment name for a report of ev
func Filename(ev *entity.Evaluation, f Formatter) string {
	name := "idea-evaluation"
	if ev != nil {
		// ids come back from the client on export
		if id, err := uuid.Parse(ev.ID); err == nil {
			name += "-" + id.String()[:8]
		}
	}
	return name + f.FileExtension()
}
