package batchfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/offerly-hq/offers-sdk-go/pkg/offers"
)

// Package batchfile parses batch input files for the CLI: a list of product
// records for register-batch, a list of UUID strings for get-offers-batch.
// JSON is the canonical format; YAML is accepted by extension.

type productRecord struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Products parses a batch registration file into products.
func Products(path string) ([]offers.Product, error) {
	var records []productRecord
	if err := decodeList(path, &records); err != nil {
		return nil, err
	}

	products := make([]offers.Product, 0, len(records))
	for i, rec := range records {
		id, err := uuid.Parse(strings.TrimSpace(rec.ID))
		if err != nil {
			return nil, fmt.Errorf("products[%d]: invalid id %q: %w", i, rec.ID, err)
		}
		if strings.TrimSpace(rec.Name) == "" {
			return nil, fmt.Errorf("products[%d]: name is required", i)
		}
		products = append(products, offers.Product{
			ID:          id,
			Name:        rec.Name,
			Description: rec.Description,
		})
	}
	return products, nil
}

// IDs parses a batch retrieval file into product ids.
func IDs(path string) ([]uuid.UUID, error) {
	var raw []string
	if err := decodeList(path, &raw); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("ids[%d]: invalid id %q: %w", i, s, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// decodeList decodes the file into out, which must be a pointer to a slice.
// The document itself must be a list.
func decodeList(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("batch file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read batch file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	decoders := []struct {
		name string
		exts []string
		fn   func([]byte, any) error
	}{
		{name: "json", exts: []string{".json"}, fn: json.Unmarshal},
		{name: "yaml", exts: []string{".yaml", ".yml"}, fn: yaml.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && !contains(d.exts, ext) {
			continue
		}
		if err := d.fn(raw, out); err == nil {
			return nil
		} else if ext != "" {
			return fmt.Errorf("decode %s batch file: %w", d.name, err)
		}
	}

	return errors.New("batch file format not recognized (expected a JSON or YAML list)")
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
