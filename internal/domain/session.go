package domain

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

const APIKeyHeader = "x-api-key"

// Session holds what is needed to talk to the remote media library. Empty
// fields are unset.
type Session struct {
	Endpoint        string
	APIKey          string
	BaseURLOverride string
}

// SessionRecord is the persisted form of a Session. The credential normally
// lives in a secret store and the record only keeps its reference.
type SessionRecord struct {
	Endpoint        string
	APIKeyRef       string
	APIKey          string
	BaseURLOverride string
}

// ClientConfig is everything the remote API client receives.
type ClientConfig struct {
	APIKey   string
	BaseURL  string
	Endpoint string
}

func (c ClientConfig) Headers() map[string]string {
	return map[string]string{APIKeyHeader: c.APIKey}
}

// IsConfigured reports whether both the endpoint and the credential are set.
// Partial configuration counts as unconfigured.
func (s Session) IsConfigured() bool {
	return s.Endpoint != "" && s.APIKey != ""
}

// ResolvedBaseURL returns the override verbatim when present, otherwise the
// origin of Endpoint.
func (s Session) ResolvedBaseURL() (string, error) {
	if s.BaseURLOverride != "" {
		return s.BaseURLOverride, nil
	}

	return Origin(s.Endpoint)
}

func (s Session) ClientConfig() (ClientConfig, error) {
	baseURL, err := s.ResolvedBaseURL()
	if err != nil {
		return ClientConfig{}, err
	}
	if s.Endpoint == "" {
		return ClientConfig{}, &ConfigurationError{Field: "endpoint", Reason: "not set"}
	}
	if s.APIKey == "" {
		return ClientConfig{}, &ConfigurationError{Field: "api key", Reason: "not set"}
	}

	return ClientConfig{
		APIKey:   s.APIKey,
		BaseURL:  baseURL,
		Endpoint: strings.TrimRight(s.Endpoint, "/"),
	}, nil
}

// Origin returns scheme://host[:port] of an absolute URL. Scheme and host are
// lower-cased and the scheme's default port is dropped.
func Origin(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", &ConfigurationError{Field: "endpoint", Reason: "not set"}
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", &ConfigurationError{Field: "endpoint", Value: raw, Reason: "not a valid URL", Err: err}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", &ConfigurationError{Field: "endpoint", Value: raw, Reason: "not an absolute URL"}
	}

	scheme := strings.ToLower(parsed.Scheme)
	host := strings.ToLower(parsed.Hostname())
	port := parsed.Port()
	if port == defaultPort(scheme) {
		port = ""
	}
	if port != "" {
		host = net.JoinHostPort(host, port)
	} else if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}

	return fmt.Sprintf("%s://%s", scheme, host), nil
}

func defaultPort(scheme string) string {
	switch scheme {
	case "http", "ws":
		return "80"
	case "https", "wss":
		return "443"
	default:
		return ""
	}
}
