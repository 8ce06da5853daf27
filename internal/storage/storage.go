package storage

import (
	"fmt"
	"strings"
)

// Package storage persists the single Raindrop credential between runs.

// Store holds the API token. There is exactly one slot: saving overwrites
// whatever was there, and nothing ever expires.
type Store interface {
	Close() error
	Token() (string, error)
	SaveToken(token string) error
}

// NewStore creates the configured storage backend.
func NewStore(typ, path string) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

// noopStore never remembers anything; the token must then come from config.
type noopStore struct{}

func (noopStore) Close() error           { return nil }
func (noopStore) Token() (string, error) { return "", nil }
func (noopStore) SaveToken(string) error { return nil }
