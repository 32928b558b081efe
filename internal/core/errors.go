package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks a request rejected before any network call.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrRemote marks a failed or non-success exchange with the provider.
	ErrRemote = errors.New("remote error")

	ErrEmptyCountry = errors.New("country is required")
)

// FetchError describes why indicators could not be fetched for a country.
// Status is the provider's HTTP status, or 0 when no response was received
// or the body could not be parsed.
type FetchError struct {
	Kind    error
	Country string
	Status  int
	Err     error
}

func (e *FetchError) Error() string {
	msg := e.Kind.Error()
	if e.Country != "" {
		msg = fmt.Sprintf("%s (country=%s)", msg, e.Country)
	}
	if e.Status != 0 {
		msg = fmt.Sprintf("%s: provider responded with status %d", msg, e.Status)
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Is(target error) bool {
	return target == e.Kind
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// InvalidArgument builds a FetchError of kind ErrInvalidArgument.
func InvalidArgument(err error) *FetchError {
	return &FetchError{Kind: ErrInvalidArgument, Err: err}
}

// RemoteError builds a FetchError of kind ErrRemote.
func RemoteError(country string, status int, err error) *FetchError {
	return &FetchError{Kind: ErrRemote, Country: country, Status: status, Err: err}
}

// StatusOf returns the provider status carried by err, or 0.
func StatusOf(err error) int {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Status
	}
	return 0
}
