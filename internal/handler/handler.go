package handler

import (
	"encoding/json"
	"net/http"
)

// Error is the message and http status code to return
type Error struct {
	Message string
	Code    int
}

// InternalServerError is a convenience function for returning an internal server error
func InternalServerError() *Error {
	return &Error{
		Message: "Internal server error",
		Code:    http.StatusInternalServerError,
	}
}

// BadRequest is a convenience function for returning a bad request error
func BadRequest(message string) *Error {
	return &Error{
		Message: message,
		Code:    http.StatusBadRequest,
	}
}

// BadGateway is a convenience function for returning an error when an upstream provider failed
func BadGateway(message string) *Error {
	return &Error{
		Message: message,
		Code:    http.StatusBadGateway,
	}
}

// Handler wraps a http handler and deals with responding to errors
type Handler func(w http.ResponseWriter, r *http.Request) *Error

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h(w, r); err != nil {
		WriteError(w, err)
	}
}

// WriteError writes the error as a json response
func WriteError(w http.ResponseWriter, err *Error) {
	var data = struct {
		Error string `json:"error"`
	}{err.Message}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	WriteJSON(w, err.Code, data)
}

// WriteJSON writes a json response with the given status code
func WriteJSON(w http.ResponseWriter, code int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(append(body, '\n'))
}
