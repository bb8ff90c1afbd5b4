package protocol

import "errors"

var (
	ErrInvalidMagic        = errors.New("protocol: invalid magic")
	ErrUnsupportedVersion  = errors.New("protocol: unsupported version")
	ErrUnknownBackend      = errors.New("protocol: unknown backend")
	ErrUnknownMessageType  = errors.New("protocol: unknown message type")
	ErrMessageTypeMismatch = errors.New("protocol: message type mismatch")
	ErrTrailingData        = errors.New("protocol: trailing stream data")
)
