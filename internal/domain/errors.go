package domain

import "errors"

var (
	// ErrProductNotFound is returned when the product database does not know a barcode
	ErrProductNotFound = errors.New("product not found")

	// ErrUpstreamUnavailable is returned when an upstream API cannot be reached
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")

	// ErrUpstreamStatus is returned when an upstream API answers with a non-success status
	ErrUpstreamStatus = errors.New("upstream returned unexpected status")

	// ErrMalformedResponse is returned when an upstream body is not the expected JSON
	ErrMalformedResponse = errors.New("malformed upstream response")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")
)
