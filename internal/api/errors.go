package api

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	ErrStoredDetailCorrupt = errors.New("could not parse AI itinerary data")
	ErrMissingDetail       = errors.New("itinerary has no AI itinerary data")
)
