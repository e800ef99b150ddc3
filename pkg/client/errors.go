package client

import (
	"encoding/json"

	"github.com/pkg/errors"
)

var (
	NoApiKeyError = errors.New("no api key provided")
	NoCallerError = errors.New("no caller address provided")
)

// ApiError is the error body returned by the API.
type ApiError struct {
	ID      int    `json:"error"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type RequestError struct {
	Err  error
	Body string
}

func newRequestError(err error, body string) *RequestError {
	return &RequestError{Err: err, Body: body}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func (e *RequestError) Error() string {
	if e.Body != "" {
		return errors.Wrap(e.Err, e.Body).Error()
	}
	return e.Err.Error()
}

// ApiError decodes the body of the failed request.
func (e *RequestError) ApiError() (ApiError, bool) {
	var ae ApiError
	if e.Body == "" || json.Unmarshal([]byte(e.Body), &ae) != nil || ae.Kind == "" {
		return ApiError{}, false
	}
	return ae, true
}

type ParseError struct {
	Err error
}

func newParseError(err error) *ParseError {
	return &ParseError{Err: err}
}

func (e ParseError) Unwrap() error {
	return e.Err
}

func (e ParseError) Error() string {
	return e.Err.Error()
}
