// Package ratefile loads rate tables from YAML and keeps the active table current.
package ratefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stacksolutions/estimator/internal/estimation"
	"github.com/stacksolutions/estimator/internal/model"
)

// document is the on-disk layout of a rate table.
type document struct {
	ProjectTypes     []model.ProjectTypeRate `yaml:"project_types"`
	ComplexityLevels []model.ComplexityLevel `yaml:"complexity_levels"`
	Features         []model.FeatureLineItem `yaml:"features"`
	ROICategories    []model.ROICategoryRate `yaml:"roi_categories"`
}

// Parse decodes and validates a YAML rate table. Unknown keys are rejected.
// Every failure wraps estimation.ErrInvalidConfiguration.
func Parse(data []byte) (*estimation.RateTable, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: parse rate table: %v", estimation.ErrInvalidConfiguration, err)
	}

	table := estimation.NewRateTable(doc.ProjectTypes, doc.ComplexityLevels, doc.Features, doc.ROICategories)
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// Load reads and parses the rate table at path.
func Load(path string) (*estimation.RateTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rate table: %w", err)
	}
	table, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// Marshal encodes a table in the layout Parse accepts.
func Marshal(t *estimation.RateTable) ([]byte, error) {
	c := t.Catalog()
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(document{
		ProjectTypes:     c.ProjectTypes,
		ComplexityLevels: c.ComplexityLevels,
		Features:         c.Features,
		ROICategories:    c.ROICategories,
	}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
