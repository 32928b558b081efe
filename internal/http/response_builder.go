// Package http provides HTTP server and handler implementations.
//
// This file implements the Builder Pattern for JSON responses. The JSON
// routes share one error body shape, {"error": "..."}, built here.

package http

import (
	"encoding/json"
	"net/http"
)

// Client-facing error messages. Upstream detail is logged, never returned.
const (
	MsgCountryRequired = "Country is required"
	MsgFetchFailed     = "Error fetching data"
	MsgRateLimited     = "Rate limit exceeded. Please try again later."
)

// ErrorBody is the JSON error payload of the API routes.
type ErrorBody struct {
	Error string `json:"error"`
}

// ResponseBuilder provides a fluent API for building JSON responses.
type ResponseBuilder struct {
	statusCode int
	body       []byte
	headers    map[string]string
	err        error
}

// NewResponse creates a new response builder with default 200 status.
func NewResponse() *ResponseBuilder {
	return &ResponseBuilder{
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

// Status sets the HTTP status code for the response.
func (b *ResponseBuilder) Status(code int) *ResponseBuilder {
	b.statusCode = code
	return b
}

// Header adds a custom header to the response.
func (b *ResponseBuilder) Header(name, value string) *ResponseBuilder {
	b.headers[name] = value
	return b
}

// RawJSON sets an already encoded JSON body, written as is.
func (b *ResponseBuilder) RawJSON(body []byte) *ResponseBuilder {
	b.headers["Content-Type"] = "application/json"
	b.body = body
	return b
}

// JSON encodes v as the response body.
func (b *ResponseBuilder) JSON(v any) *ResponseBuilder {
	body, err := json.Marshal(v)
	if err != nil {
		b.err = err
		return b
	}
	return b.RawJSON(body)
}

// Write sends the built response to the http.ResponseWriter. An encoding
// failure in JSON turns into a bare 500.
func (b *ResponseBuilder) Write(w http.ResponseWriter) {
	if b.err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	for name, value := range b.headers {
		w.Header().Set(name, value)
	}

	w.WriteHeader(b.statusCode)
	if len(b.body) > 0 {
		_, _ = w.Write(b.body)
	}
}

// ErrorResponse creates a JSON error response.
func ErrorResponse(statusCode int, message string) *ResponseBuilder {
	return NewResponse().
		Status(statusCode).
		JSON(ErrorBody{Error: message})
}

// CountryRequiredError creates the 400 response for a missing country.
func CountryRequiredError() *ResponseBuilder {
	return ErrorResponse(http.StatusBadRequest, MsgCountryRequired)
}

// FetchFailedError creates the 500 response for any provider failure.
func FetchFailedError() *ResponseBuilder {
	return ErrorResponse(http.StatusInternalServerError, MsgFetchFailed)
}

// RateLimitedError creates a 429 response.
func RateLimitedError() *ResponseBuilder {
	return ErrorResponse(http.StatusTooManyRequests, MsgRateLimited)
}
