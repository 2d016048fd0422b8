package render

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/futig/idea-validator/internal/entity"
)

// MaxMessageLength is the Telegram limit for one text message
const MaxMessageLength = 4096

const (
	MsgWelcome = `👋 Hi! I score business ideas.

Send me your idea in one message (10 to 2000 characters) and I will rate its
• Profitability
• Market Demand
• Execution Ease

and suggest what to improve.`

	MsgHelp = `💡 Describe what problem your idea solves, who the customers are and how it would work.

Every message is evaluated on its own. Send /start to see the introduction again.`

	MsgProcessing = `⏳ Evaluating your idea, this usually takes under a minute...`

	MsgReportCaption = `📄 Full report`

	ErrUnknownCommand = `❌ Unknown command. Use /help`
	ErrTextOnly       = `❌ Please send your idea as a text message.`
)

// RenderError returns the message shown for a failed evaluation. Only
// validation errors expose their own text.
func RenderError(err error) string {
	return "❌ " + entity.UserMessage(err)
}

// RenderInternalError is sent when a handler panics
func RenderInternalError() string {
	return "❌ " + entity.MsgInternalError
}

// Limits for the compact rendering, in runes of unescaped text
const (
	compactReasoningLength  = 900
	compactAssessmentLength = 600
)

// RenderEvaluation formats an evaluation as a Telegram HTML message. When
// the full text would not fit into one message, lists are dropped and long
// texts are shortened.
func RenderEvaluation(ev *entity.Evaluation) string {
	text := renderEvaluation(ev, false)
	if utf8.RuneCountInString(text) <= MaxMessageLength {
		return text
	}
	return renderEvaluation(ev, true)
}

func renderEvaluation(ev *entity.Evaluation, compact bool) string {
	shorten := func(s string, limit int) string {
		if compact {
			return truncate(s, limit)
		}
		return s
	}

	var sb strings.Builder
	grade := entity.GradeFor(ev.Result.OverallScore)

	fmt.Fprintf(&sb, "%s <b>Overall: %.1f/10</b> (%s)\n<i>%s</i>\n",
		toneEmoji(grade.Tone), ev.Result.OverallScore, grade.Letter, html.EscapeString(grade.Message))
	if ev.Result.OverallAssessment != nil && *ev.Result.OverallAssessment != "" {
		fmt.Fprintf(&sb, "\n%s\n", html.EscapeString(shorten(*ev.Result.OverallAssessment, compactAssessmentLength)))
	}

	for _, c := range entity.Criteria {
		ce := ev.Result.Criterion(c)
		if ce == nil {
			continue
		}

		fmt.Fprintf(&sb, "\n%s <b>%s: %.1f/10</b> %s\n",
			toneEmoji(entity.ToneFor(ce.Score)), c.Label(), ce.Score, renderScoreBar(ce.Score))
		sb.WriteString(html.EscapeString(shorten(ce.ReasoningText(), compactReasoningLength)))
		sb.WriteString("\n")

		if !compact {
			writeList(&sb, "✅ Strengths", ce.Strengths)
			writeList(&sb, "⚠️ Weaknesses", ce.Weaknesses)
			writeList(&sb, "💡 Recommendations", ce.Recommendations)
		}
	}

	return sb.String()
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s\n", title)
	for _, item := range items {
		fmt.Fprintf(sb, "• %s\n", html.EscapeString(item))
	}
}

// renderScoreBar draws a 10 cell bar for a score in [0,10]
func renderScoreBar(score float64) string {
	filled := int(score + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("▓", filled) + strings.Repeat("░", 10-filled)
}

func toneEmoji(t entity.Tone) string {
	switch t {
	case entity.ToneSuccess:
		return "🟢"
	case entity.ToneWarning:
		return "🟡"
	default:
		return "🔴"
	}
}

// truncate cuts plain text to at most limit runes
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:limit-1])) + "…"
}
