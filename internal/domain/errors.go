package domain

import (
	"errors"
	"fmt"
)

var (
	ErrGroupNotFound   = errors.New("duplicate group not found")
	ErrAssetNotInGroup = errors.New("asset is not part of the group")
	ErrSecretNotFound  = errors.New("secret not found")
	ErrUnauthorized    = errors.New("remote service rejected the api key")
)

// ConfigurationError reports a session that cannot produce a usable base URL
// or client configuration.
type ConfigurationError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("configuration: %s %s", e.Field, e.Reason)
	if e.Value != "" {
		msg = fmt.Sprintf("configuration: %s %q %s", e.Field, e.Value, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
