package services

import "errors"

var (
	// ErrDataFormat means the resume payload could not be parsed as a PDF.
	ErrDataFormat = errors.New("unreadable pdf")
	// ErrEmptyContent means the PDF parsed but yielded no text.
	ErrEmptyContent = errors.New("no text content found in pdf")
	// ErrTransport covers network, timeout and HTTP status failures of a model call.
	ErrTransport = errors.New("model call failed")
	// ErrResponseParse means the model output contained no valid JSON object.
	ErrResponseParse = errors.New("no valid json object in model response")
	// ErrConfiguration means required provider settings are missing.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrJobNotFound is returned by a match run whose job code is unknown.
	ErrJobNotFound = errors.New("job not found")
)
