package evaluation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/futig/idea-validator/internal/entity"
	"github.com/futig/idea-validator/internal/pkg/formatter"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsecase struct {
	evaluation *entity.Evaluation
	err        error
}

func (f *fakeUsecase) Evaluate(_ context.Context, _ string) (*entity.Evaluation, error) {
	return f.evaluation, f.err
}

func newTestRouter(uc EvaluationUsecase) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(uc, formatter.NewFactory()))
	return r
}

func do(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sampleEvaluation() *entity.Evaluation {
	return &entity.Evaluation{
		ID:   "3f2b8c1e-4d5a-4b6c-9e7f-0a1b2c3d4e5f",
		Idea: "A subscription box for left-handed scissors",
		Result: &entity.EvaluationResult{
			Demand:       &entity.CriterionEvaluation{Score: 6, Strengths: []string{}, Weaknesses: []string{}, Recommendations: []string{}},
			OverallScore: 6,
		},
	}
}

func TestEvaluate_Success(t *testing.T) {
	router := newTestRouter(&fakeUsecase{evaluation: sampleEvaluation()})

	rec := do(router, "/api/v1/evaluations", `{"business_idea":"A subscription box for left-handed scissors"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var got entity.Evaluation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 6.0, got.Result.OverallScore)
}

func TestEvaluate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validation", &entity.ValidationError{Field: "business_idea", Message: entity.MsgIdeaRequired}, http.StatusBadRequest, "validation", entity.MsgIdeaRequired},
		{"transport", fmt.Errorf("%w: openai: 401", entity.ErrTransport), http.StatusBadGateway, "transport", entity.MsgProcessingFailed},
		{"parse", fmt.Errorf("%w: eof", entity.ErrParse), http.StatusBadGateway, "parse", entity.MsgProcessingFailed},
		{"internal", fmt.Errorf("%w: no score", entity.ErrInternal), http.StatusBadGateway, "internal", entity.MsgProcessingFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeUsecase{err: tt.err})

			rec := do(router, "/api/v1/evaluations", `{"business_idea":"anything at all"}`)

			assert.Equal(t, tt.status, rec.Code)
			var got entity.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.code, got.Error)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}

func TestEvaluate_MalformedBody(t *testing.T) {
	router := newTestRouter(&fakeUsecase{})

	rec := do(router, "/api/v1/evaluations", `business_idea=text`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportReport(t *testing.T) {
	router := newTestRouter(&fakeUsecase{})
	payload, err := json.Marshal(sampleEvaluation())
	require.NoError(t, err)

	rec := do(router, "/api/v1/reports/pdf", string(payload))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	rec = do(router, "/api/v1/reports/html", string(payload))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Market Demand: 6.0/10")
}

func TestExportReport_BadInput(t *testing.T) {
	router := newTestRouter(&fakeUsecase{})

	rec := do(router, "/api/v1/reports/xlsx", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_format")

	rec = do(router, "/api/v1/reports/markdown", `{"idea":"no result"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_evaluation")
}
