// Package config provides configuration management for the datalineage CLI.
//
// Configuration is layered with koanf. Precedence, highest to lowest:
// flags > environment variables > config file > defaults.
package config

import "github.com/harborview-health/datalineage/pkg/core"

// TierConfig holds the distance thresholds for impact tiers.
type TierConfig struct {
	HighMax   int `koanf:"high_max"`
	MediumMax int `koanf:"medium_max"`
}

// Thresholds converts the config into the core threshold table.
func (t TierConfig) Thresholds() core.TierThresholds {
	return core.TierThresholds{HighMax: t.HighMax, MediumMax: t.MediumMax}
}

// Config holds all CLI configuration options.
type Config struct {
	DataDir           string     `koanf:"data_dir"`
	RelationshipsFile string     `koanf:"relationships_file"`
	OutputDir         string     `koanf:"output_dir"`
	StatePath         string     `koanf:"state_path"`
	Title             string     `koanf:"title"`
	Verbose           bool       `koanf:"verbose"`
	OutputFormat      string     `koanf:"output"`
	Tiers             TierConfig `koanf:"tiers"`
	UtilityColumns    []string   `koanf:"utility_columns"`
}

// Default configuration values.
const (
	DefaultDataDir           = "data"
	DefaultRelationshipsFile = "relationships.yaml"
	DefaultOutputDir         = "data/lineage"
	DefaultStateFile         = ".datalineage/state.db"
	DefaultTitle             = "Dataset Lineage Documentation"
	DefaultOutput            = "text"
)
