package evaluation

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/futig/idea-validator/internal/entity"
	"github.com/futig/idea-validator/internal/pkg/formatter"
	"github.com/futig/idea-validator/internal/pkg/logger"
	"github.com/futig/idea-validator/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies. An idea is at most 2000 runes, an
// evaluation posted back for export is a few kilobytes.
const maxBodyBytes = 1 << 20

type Handler struct {
	usecase    EvaluationUsecase
	formatters FormatterFactory
}

func NewHandler(usecase EvaluationUsecase, formatters FormatterFactory) *Handler {
	return &Handler{
		usecase:    usecase,
		formatters: formatters,
	}
}

// Evaluate handles POST /api/v1/evaluations
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Evaluate")

	var req entity.EvaluateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid_request", "request body must be a JSON object with a business_idea field", err)
		return
	}

	evaluation, err := h.usecase.Evaluate(ctx, req.BusinessIdea)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, evaluation)
}

// ExportReport handles POST /api/v1/reports/{format}
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ExportReport")
	format := entity.ReportFormat(chi.URLParam(r, "format"))

	f, err := h.formatters.Create(format)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid_format", "supported formats are markdown, html, pdf and docx", err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid_request", "failed to read request body", err)
		return
	}

	evaluation, err := formatter.DecodeEvaluation(body)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid_evaluation", "request body must be an evaluation returned by this service", err)
		return
	}

	data, err := f.Format(evaluation)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal", entity.MsgInternalError, err)
		return
	}

	ctxzap.Info(ctx, "report exported",
		zap.String("format", string(format)),
		zap.Int("size", len(data)),
	)

	response.File(w, f.ContentType(), formatter.Filename(evaluation, f), data)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Error(ctx, message)
	}
	response.Error(w, status, code, message)
}

// handleUsecaseError maps error kinds to statuses. Only validation messages
// reach the client, everything else gets the generic retry message.
func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	kind := entity.KindOf(err)

	var vErr *entity.ValidationError
	if errors.As(err, &vErr) {
		ctxzap.Info(ctx, "idea rejected", zap.String("reason", vErr.Message))
		response.Error(w, http.StatusBadRequest, kind.String(), vErr.Message)
		return
	}

	h.respondError(ctx, w, http.StatusBadGateway, kind.String(), entity.MsgProcessingFailed, err)
}
