package statestore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/offerly-hq/offers-sdk-go/pkg/offers"
)

// fileStore keeps the state as a flat JSON document, the canonical persisted
// form of the client state.
type fileStore struct {
	path string
}

func (f *fileStore) Load() (offers.State, bool, error) {
	raw, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return offers.State{}, false, nil
	}
	if err != nil {
		return offers.State{}, false, fmt.Errorf("read state file: %w", err)
	}

	state, err := offers.ParseState(raw)
	if err != nil {
		return offers.State{}, false, err
	}
	return state, true, nil
}

func (f *fileStore) Save(state offers.State) error {
	raw, err := state.MarshalIndent()
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state directory: %w", err)
		}
	}
	if err := os.WriteFile(f.path, raw, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

func (f *fileStore) Close() error { return nil }
