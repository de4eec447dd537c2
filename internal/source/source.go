// Package source loads the lineage engine's inputs: per-dataset column
// sets discovered from CSV files in the data directory, and curated
// relationship declarations from a YAML file. Both are plain data handed
// to the catalog and detector; nothing here interprets the datasets'
// contents.
package source

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harborview-health/datalineage/pkg/core"
)

// DiscoverColumnSets reads the header row of every CSV file in dataDir.
// The file base name (without extension) is the dataset identifier. Files
// that cannot be read fail the whole discovery; a partial schema inventory
// would silently distort relationship detection.
func DiscoverColumnSets(dataDir string) (map[string][]string, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory %s: %w", dataDir, err)
	}

	columns := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}

		path := filepath.Join(dataDir, entry.Name())
		header, err := readHeader(path)
		if err != nil {
			return nil, err
		}

		dataset := strings.TrimSuffix(entry.Name(), ".csv")
		columns[dataset] = header
	}

	return columns, nil
}

// readHeader reads the first row of a CSV file.
func readHeader(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	header, err := csv.NewReader(f).Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	cols := make([]string, len(header))
	for i, name := range header {
		cols[i] = strings.TrimSpace(name)
	}
	return cols, nil
}

// relationshipsFile is the YAML shape of the curated relationships file.
type relationshipsFile struct {
	Relationships []relationshipEntry `yaml:"relationships"`
}

type relationshipEntry struct {
	Source        string   `yaml:"source"`
	Target        string   `yaml:"target"`
	Type          string   `yaml:"type"`
	JoiningFields []string `yaml:"joining_fields"`
	Description   string   `yaml:"description"`
}

// LoadRelationships parses curated relationship declarations. Every entry
// is marked with standard provenance. A missing file is not an error:
// detection alone is a valid configuration. Structural validation (missing
// source/target/fields) happens when the catalog ingests the entries, so
// a bad declaration aborts the run before any document is produced.
func LoadRelationships(path string) ([]core.Relationship, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read relationships file %s: %w", path, err)
	}

	var file relationshipsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse relationships file %s: %w", path, err)
	}

	rels := make([]core.Relationship, 0, len(file.Relationships))
	for i, entry := range file.Relationships {
		relType := core.RelationshipPrimary
		if entry.Type != "" {
			parsed, ok := core.ParseRelationshipType(entry.Type)
			if !ok {
				return nil, fmt.Errorf("relationship %d (%s -> %s): unknown relationship type %q",
					i, entry.Source, entry.Target, entry.Type)
			}
			relType = parsed
		}

		rels = append(rels, core.Relationship{
			Source:          entry.Source,
			Target:          entry.Target,
			Type:            relType,
			JoiningFields:   entry.JoiningFields,
			DetectionMethod: core.DetectionStandard,
			Description:     entry.Description,
		})
	}

	return rels, nil
}
