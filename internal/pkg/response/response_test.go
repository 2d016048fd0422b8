package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()

	Error(rec, http.StatusBadRequest, "validation", "Please enter your business idea.")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"validation","message":"Please enter your business idea."}`, rec.Body.String())
}

func TestFile(t *testing.T) {
	rec := httptest.NewRecorder()

	File(rec, "text/markdown; charset=utf-8", "idea-evaluation.md", []byte("# Report\n"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="idea-evaluation.md"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "9", rec.Header().Get("Content-Length"))
	assert.Equal(t, "# Report\n", rec.Body.String())
}
