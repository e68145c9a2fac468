package catalog

import "errors"

var (
	ErrNotFound      = errors.New("record not found")
	ErrValidation    = errors.New("invalid request")
	ErrBlockConflict = errors.New("room has an active booking in the block range")
)
