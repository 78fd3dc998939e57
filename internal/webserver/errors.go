package webserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeUpload     ErrorType = "upload"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeInternal   ErrorType = "internal"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	Type        ErrorType `json:"type"`
	Code        string    `json:"code"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Details     string    `json:"details"`
	Suggestions []string  `json:"suggestions,omitempty"`
}

// CategorizeError analyzes an error and returns an appropriate ErrorResponse
func CategorizeError(err error) ErrorResponse {
	if err == nil {
		return ErrorResponse{
			Type:        ErrorTypeInternal,
			Code:        "unknown_error",
			Title:       "Processing error",
			Description: "The request could not be processed.",
			Details:     "No error details available",
		}
	}

	errMsg := err.Error()

	if isUploadTooLarge(err) {
		return ErrorResponse{
			Type:        ErrorTypeUpload,
			Code:        "upload_too_large",
			Title:       "File too large",
			Description: "The uploaded file exceeds the maximum accepted size.",
			Details:     errMsg,
			Suggestions: []string{"Upload a smaller text file."},
		}
	}

	if errors.Is(err, http.ErrMissingFile) {
		return ErrorResponse{
			Type:        ErrorTypeValidation,
			Code:        "missing_file",
			Title:       "No file uploaded",
			Description: "The request does not contain a file in the \"file\" form field.",
			Details:     errMsg,
			Suggestions: []string{"Select a file before submitting the form."},
		}
	}

	errMsgLower := strings.ToLower(errMsg)

	if errors.Is(err, errNotMultipart) || strings.Contains(errMsgLower, "form") || strings.Contains(errMsgLower, "multipart") {
		return ErrorResponse{
			Type:        ErrorTypeUpload,
			Code:        "upload_form_error",
			Title:       "Invalid upload form",
			Description: "The request body is not a valid multipart/form-data upload.",
			Details:     errMsg,
			Suggestions: []string{
				"Send the file as multipart/form-data.",
				"Use the upload page to submit the file.",
			},
		}
	}

	return ErrorResponse{
		Type:        ErrorTypeInternal,
		Code:        "processing_error",
		Title:       "Processing error",
		Description: "The request could not be processed.",
		Details:     errMsg,
		Suggestions: []string{"Try again."},
	}
}

// WriteErrorResponse writes a structured error response as JSON
func WriteErrorResponse(w http.ResponseWriter, err error, statusCode int) {
	errorResp := CategorizeError(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if jsonErr := json.NewEncoder(w).Encode(errorResp); jsonErr != nil {
		fmt.Fprintf(w, "Error: %v", err)
	}
}

// statusForError picks the HTTP status of a transport error
func statusForError(err error) int {
	if isUploadTooLarge(err) {
		return http.StatusRequestEntityTooLarge
	}

	return http.StatusBadRequest
}
