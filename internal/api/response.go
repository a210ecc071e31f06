package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"docquery/internal/rxsearch"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}

type apiError struct {
	Code    string
	Message string
}

func toAPIError(status int, err error) apiError {
	msg := "Request failed."
	code := "DQ-API-4000"

	switch {
	case status == http.StatusBadGateway:
		return apiError{
			Code:    "DQ-LLM-5020",
			Message: "LLM provider unavailable. Retry shortly.",
		}
	case status == http.StatusServiceUnavailable:
		return apiError{
			Code:    "DQ-API-5030",
			Message: "Batch jobs are unavailable. Check the Temporal connection.",
		}
	case status >= 500:
		return apiError{
			Code:    "DQ-API-5000",
			Message: "Internal server error. Please retry or check service logs.",
		}
	case status == http.StatusBadRequest:
		code = "DQ-API-4001"
		msg = "Invalid request. Check inputs and retry."
	case status == http.StatusNotFound:
		code = "DQ-API-4004"
		msg = "Requested resource was not found."
	case status == http.StatusMethodNotAllowed:
		code = "DQ-API-4005"
		msg = "This endpoint does not support the requested method."
	case status == http.StatusRequestEntityTooLarge:
		code = "DQ-API-4013"
		msg = "Upload exceeds the size limit."
	case status == http.StatusUnprocessableEntity:
		code = "DQ-PDF-4220"
		msg = "The PDF contains no extractable text."
	}

	// 4xx messages only carry user-safe validation context.
	if status >= 400 && status < 500 && err != nil {
		switch {
		case errors.Is(err, errInvalidJSON):
			msg = "Malformed JSON request body."
		case errors.Is(err, errNoFile):
			msg = "No file was provided."
		case errors.Is(err, errNotPDF):
			msg = "Only PDF files are accepted."
		case errors.Is(err, rxsearch.ErrInvalidPattern):
			msg = "Invalid regular expression pattern."
		case status == http.StatusBadRequest:
			msg = capitalize(err.Error()) + "."
		}
	}

	return apiError{Code: code, Message: msg}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
