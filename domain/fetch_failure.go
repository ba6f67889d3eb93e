package domain

import (
	"errors"
	"fmt"
	"net/http"
)

type FetchFailureKind string

const (
	FailureTimeout          FetchFailureKind = "timeout"
	FailureHTTPError        FetchFailureKind = "http-error"
	FailureNetwork          FetchFailureKind = "network-error"
	FailureEmptyBody        FetchFailureKind = "empty-body"
	FailureDomainNotAllowed FetchFailureKind = "domain-not-allowed"
	FailureInvalidURL       FetchFailureKind = "invalid-url"
)

// FetchFailure is the typed error returned by the fetch gateway.
type FetchFailure struct {
	Kind       FetchFailureKind
	URL        string
	StatusCode int
	Cause      error
}

// Label renders the kind, with the status appended for HTTP errors
// ("http-error:404").
func (f *FetchFailure) Label() string {
	if f.Kind == FailureHTTPError {
		return fmt.Sprintf("%s:%d", f.Kind, f.StatusCode)
	}
	return string(f.Kind)
}

func (f *FetchFailure) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("%s (%v)", f.Label(), f.Cause)
	}
	return f.Label()
}

func (f *FetchFailure) Unwrap() error {
	return f.Cause
}

// IsPermanent is true for upstream answers that retrying will not change.
func (f *FetchFailure) IsPermanent() bool {
	if f.Kind == FailureDomainNotAllowed || f.Kind == FailureInvalidURL {
		return true
	}
	if f.Kind != FailureHTTPError {
		return false
	}
	switch f.StatusCode {
	case http.StatusBadRequest, http.StatusForbidden, http.StatusNotFound, http.StatusGone:
		return true
	}
	return false
}

func AsFetchFailure(err error) (*FetchFailure, bool) {
	var f *FetchFailure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

type FetchedFeed struct {
	URL         string
	Body        []byte
	ContentType string
	StatusCode  int
}
