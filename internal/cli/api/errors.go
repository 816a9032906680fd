package api

import (
	"encoding/json"
	"fmt"
)

// Kind classifies an API failure for the command layer
type Kind int

const (
	// KindTransport means the request was sent but no response arrived
	KindTransport Kind = iota
	// KindRejected means the server answered with a non-2xx status
	KindRejected
	// KindInvalid means a 2xx response violated the wire contract
	KindInvalid
)

// Error is the single error type surfaced by this package. Raw transport
// errors are never passed through; they are wrapped here with a message fit
// for the terminal.
type Error struct {
	Kind    Kind
	Status  int // HTTP status, set for KindRejected
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func transportError(err error) *Error {
	return &Error{
		Kind:    KindTransport,
		Message: "no response received from server, check your connection and try again",
		cause:   err,
	}
}

// rejectedError derives the message from the server's error payload when one
// is present, otherwise falls back to the status code
func rejectedError(status int, body []byte) *Error {
	message := fmt.Sprintf("request failed with status %d", status)

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			message = payload.Error
		} else if payload.Message != "" {
			message = payload.Message
		}
	}

	return &Error{
		Kind:    KindRejected,
		Status:  status,
		Message: message,
	}
}

func invalidResponseError(detail string) *Error {
	return &Error{
		Kind:    KindInvalid,
		Message: fmt.Sprintf("invalid response from server: %s", detail),
	}
}
