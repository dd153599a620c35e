package toml

import "fmt"

const (
	currentSessionSchemaVersion = 1
	currentGroupsSchemaVersion  = 1
)

// sessionFileSchema is the "api" store.
type sessionFileSchema struct {
	Version         int    `toml:"version"`
	Endpoint        string `toml:"endpoint"`
	APIKeyRef       string `toml:"api_key_ref,omitempty"`
	APIKey          string `toml:"api_key,omitempty"`
	BaseURLOverride string `toml:"base_url_override,omitempty"`
}

func (s *sessionFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSessionSchemaVersion
	}
}

func (s sessionFileSchema) validateVersion() error {
	if s.Version > currentSessionSchemaVersion {
		return fmt.Errorf("unsupported api schema version %d (current %d)", s.Version, currentSessionSchemaVersion)
	}

	return nil
}

// groupsFileSchema is the "data" store.
type groupsFileSchema struct {
	Version   int           `toml:"version"`
	FetchedAt string        `toml:"fetched_at,omitempty"`
	Groups    []groupSchema `toml:"groups"`
}

func (s *groupsFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentGroupsSchemaVersion
	}
}

func (s groupsFileSchema) validateVersion() error {
	if s.Version > currentGroupsSchemaVersion {
		return fmt.Errorf("unsupported data schema version %d (current %d)", s.Version, currentGroupsSchemaVersion)
	}

	return nil
}

type groupSchema struct {
	ID     string   `toml:"id"`
	Assets []string `toml:"assets"`
}
