package entity

// ReportFormat is an export format of an evaluation report
type ReportFormat string

const (
	FormatMarkdown ReportFormat = "markdown"
	FormatHTML     ReportFormat = "html"
	FormatPDF      ReportFormat = "pdf"
	FormatDOCX     ReportFormat = "docx"
)

// ReportFormats lists supported export formats in display order
var ReportFormats = []ReportFormat{FormatPDF, FormatDOCX, FormatMarkdown, FormatHTML}

func (f ReportFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatHTML, FormatPDF, FormatDOCX:
		return true
	default:
		return false
	}
}

// EvaluateRequest is the JSON API request body
type EvaluateRequest struct {
	BusinessIdea string `json:"business_idea"`
}

// ErrorResponse is returned by the JSON API on failure
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
