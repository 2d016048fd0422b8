package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/futig/idea-validator/internal/entity"
	"github.com/futig/idea-validator/internal/pkg/formatter"
	"github.com/futig/idea-validator/internal/pkg/logger"
	"github.com/futig/idea-validator/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageIndex   = "index.html"
	pageResults = "results.html"

	// an idea is at most 2000 runes, the export form carries the evaluation JSON
	maxFormBytes = 1 << 20
)

type EvaluationUsecase interface {
	Evaluate(ctx context.Context, rawIdea string) (*entity.Evaluation, error)
}

type FormatterFactory interface {
	Create(format entity.ReportFormat) (formatter.Formatter, error)
}

type Handler struct {
	usecase    EvaluationUsecase
	formatters FormatterFactory
	pages      map[string]*template.Template
}

func NewHandler(usecase EvaluationUsecase, formatters FormatterFactory) (*Handler, error) {
	pages := make(map[string]*template.Template)
	for _, page := range []string{pageIndex, pageResults} {
		tmpl, err := template.ParseFS(templateFS, "templates/base.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		pages[page] = tmpl
	}

	return &Handler{
		usecase:    usecase,
		formatters: formatters,
		pages:      pages,
	}, nil
}

// Index handles GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(r.Context(), w, http.StatusOK, pageIndex, newFormView(""))
}

// Submit handles POST /
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SubmitIdea")

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		ctxzap.Warn(ctx, "failed to parse form", zap.Error(err))
		view := newFormView("")
		view.Flashes = []flash{{Category: flashError, Message: entity.MsgProcessingFailed}}
		h.render(ctx, w, http.StatusBadRequest, pageIndex, view)
		return
	}

	idea := r.PostForm.Get("business_idea")

	evaluation, err := h.usecase.Evaluate(ctx, idea)
	if err != nil {
		view := newFormView(idea)

		var vErr *entity.ValidationError
		if errors.As(err, &vErr) {
			view.Errors = []string{vErr.Message}
			h.render(ctx, w, http.StatusOK, pageIndex, view)
			return
		}

		ctxzap.Error(ctx, "failed to evaluate idea",
			zap.String("error_kind", entity.KindOf(err).String()),
			zap.Error(err),
		)
		view.Flashes = []flash{{Category: flashError, Message: entity.MsgProcessingFailed}}
		h.render(ctx, w, http.StatusOK, pageIndex, view)
		return
	}

	view, err := newResultsView(evaluation)
	if err != nil {
		ctxzap.Error(ctx, "failed to build results view", zap.Error(err))
		h.InternalError(w, r.WithContext(ctx))
		return
	}
	h.render(ctx, w, http.StatusOK, pageResults, view)
}

// New handles GET /new
func (h *Handler) New(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusFound)
}

// Export handles POST /export/{format}. The results page posts the
// evaluation back, nothing is kept on the server between requests.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ExportReport")
	format := entity.ReportFormat(chi.URLParam(r, "format"))

	f, err := h.formatters.Create(format)
	if err != nil {
		ctxzap.Warn(ctx, "unsupported report format", zap.String("format", string(format)))
		h.NotFound(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.renderFlash(ctx, w, http.StatusBadRequest, entity.MsgProcessingFailed, err)
		return
	}

	evaluation, err := formatter.DecodeEvaluation([]byte(r.PostForm.Get("evaluation")))
	if err != nil {
		h.renderFlash(ctx, w, http.StatusBadRequest, entity.MsgProcessingFailed, err)
		return
	}

	data, err := f.Format(evaluation)
	if err != nil {
		h.renderFlash(ctx, w, http.StatusInternalServerError, entity.MsgInternalError, err)
		return
	}

	ctxzap.Info(ctx, "report exported",
		zap.String("format", string(format)),
		zap.Int("size", len(data)),
	)

	response.File(w, f.ContentType(), formatter.Filename(evaluation, f), data)
}

// NotFound renders the empty form with 404
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(r.Context(), w, http.StatusNotFound, pageIndex, newFormView(""))
}

// InternalError renders the empty form with 500 and the internal error flash
func (h *Handler) InternalError(w http.ResponseWriter, r *http.Request) {
	view := newFormView("")
	view.Flashes = []flash{{Category: flashError, Message: entity.MsgInternalError}}
	h.render(r.Context(), w, http.StatusInternalServerError, pageIndex, view)
}

func (h *Handler) renderFlash(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, "failed to export report", zap.Error(err))
	view := newFormView("")
	view.Flashes = []flash{{Category: flashError, Message: message}}
	h.render(ctx, w, status, pageIndex, view)
}

// render executes into a buffer first so a template error never leaves a
// half written page behind
func (h *Handler) render(ctx context.Context, w http.ResponseWriter, status int, page string, data any) {
	var buf bytes.Buffer
	if err := h.pages[page].ExecuteTemplate(&buf, "base", data); err != nil {
		ctxzap.Error(ctx, "failed to render template", zap.String("page", page), zap.Error(err))
		http.Error(w, entity.MsgInternalError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
