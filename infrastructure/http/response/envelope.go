package response

import (
	"encoding/json"
	"net/http"

	"github.com/taskana/taskana/pkg/apperror"
)

// errorBody is the wire shape for every failure: the message is either a
// single string or a list of validation messages.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message interface{} `json:"message"`
	Status  int         `json:"status"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// WriteError converts any error into the error envelope. Unrecognized errors
// become a generic 500 so internal details never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	appErr := apperror.FromError(err)

	var message interface{} = appErr.Message
	if len(appErr.Violations) > 0 {
		message = appErr.Violations
	}

	WriteJSON(w, appErr.Status, errorBody{
		Error: errorDetail{
			Message: message,
			Status:  appErr.Status,
		},
	})
}

func Unauthorized(w http.ResponseWriter, message string) {
	WriteError(w, apperror.Unauthorized(message))
}

func Forbidden(w http.ResponseWriter, message string) {
	WriteError(w, apperror.Forbidden(message))
}

func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, apperror.NotFound(message))
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, apperror.BadRequest(message))
}
