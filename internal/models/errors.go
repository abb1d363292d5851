package models

import "errors"

// Sentinel errors. Services wrap these with context; the handler layer maps
// them to HTTP statuses.
var (
	ErrNotFound          = errors.New("not found")
	ErrBadRequest        = errors.New("bad request")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrParse             = errors.New("parse error")
)

// Request DTOs.

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateSourceRequest struct {
	SourceID        string    `json:"sourceId"`
	Mode            *string   `json:"mode"`
	AcceptedFormats *[]string `json:"acceptedFormats"`
	RefreshCadence  *string   `json:"refreshCadence"`
}

type PublishRequest struct {
	Data any `json:"data"`
}
