package response

import (
	"encoding/json"
	"net/http"

	apperrors "payment-module/errors"
	"payment-module/logger"
)

// StandardResponse represents the standard API response structure
type StandardResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SuccessResponse sends a success response with given status code, message, and data
func SuccessResponse(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	response := StandardResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	}
	SendJSON(w, statusCode, response)
}

// ErrorResponse sends an error response with given status code and error message
func ErrorResponse(w http.ResponseWriter, statusCode int, errorMsg string) {
	response := StandardResponse{
		Status: "error",
		Error:  errorMsg,
	}
	SendJSON(w, statusCode, response)
}

// SendJSON encodes and sends a JSON response
func SendJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Error encoding JSON response: %v", err)
	}
}

// FromError maps an application error to a stable status code and reason
// string. Internal detail is logged server-side, never returned.
func FromError(w http.ResponseWriter, err error) {
	var appErr *apperrors.Error
	if !apperrors.As(err, &appErr) {
		logger.Error("Unclassified error: %v", err)
		ErrorResponse(w, http.StatusInternalServerError, "internal error")
		return
	}

	if appErr.WrappedErr != nil {
		logger.Error("%s: %v", appErr.Message, appErr.WrappedErr)
	}

	switch appErr.Kind {
	case apperrors.Invalid:
		ErrorResponse(w, http.StatusBadRequest, appErr.Message)
	case apperrors.NotFound:
		ErrorResponse(w, http.StatusNotFound, appErr.Message)
	case apperrors.Unauthorized:
		ErrorResponse(w, http.StatusUnauthorized, appErr.Message)
	case apperrors.Conflict:
		ErrorResponse(w, http.StatusConflict, appErr.Message)
	case apperrors.Unavailable:
		ErrorResponse(w, http.StatusBadGateway, appErr.Message)
	default:
		ErrorResponse(w, http.StatusInternalServerError, appErr.Message)
	}
}
