package statestore

import (
	"fmt"
	"strings"

	"github.com/offerly-hq/offers-sdk-go/pkg/offers"
)

// Package statestore persists client state between CLI invocations.

// Store loads and saves a client-state snapshot.
type Store interface {
	// Load returns the persisted state. The second return is false when
	// nothing has been persisted yet.
	Load() (offers.State, bool, error)
	Save(state offers.State) error
	Close() error
}

const (
	// Supported store types.
	TypeFile  = "file"
	TypeBBolt = "bbolt"
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("state store requires a path")
	}

	switch typ {
	case "", TypeFile:
		return &fileStore{path: path}, nil
	case TypeBBolt:
		return openBolt(path)
	default:
		return nil, fmt.Errorf("unsupported state store type %q", typ)
	}
}
