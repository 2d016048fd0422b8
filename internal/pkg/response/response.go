package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/futig/idea-validator/internal/entity"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		// Headers are already sent, nothing left to report on failure
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Error writes an error response. code is a stable machine readable kind,
// message is safe to show to end users.
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, entity.ErrorResponse{Error: code, Message: message})
}

// Success writes a success response
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// File writes data as a downloadable attachment
func File(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
