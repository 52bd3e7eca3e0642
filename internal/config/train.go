// README: Training job configuration loaded from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"farecast/internal/model"
)

// TrainConfig describes one training run end to end: where the raw rides
// come from, how the hold-out split is drawn, the forest shape, where the
// artifact goes, and which tracking collaborator to report to.
type TrainConfig struct {
	Data struct {
		// Source is "csv" or "postgres".
		Source string `yaml:"source"`
		Path   string `yaml:"path"`
		DSN    string `yaml:"dsn"`
		Table  string `yaml:"table"`
		NRows  int    `yaml:"nrows"`
	} `yaml:"data"`

	Split struct {
		TestSize float64 `yaml:"test_size"`
		Seed     int64   `yaml:"seed"`
	} `yaml:"split"`

	Forest model.ForestConfig `yaml:"forest"`

	Timezone string `yaml:"timezone"`

	Artifact struct {
		Backend string `yaml:"backend"`
		Path    string `yaml:"path"`
		Redis   string `yaml:"redis_addr"`
		Bucket  string `yaml:"bucket"`
		Key     string `yaml:"key"`
	} `yaml:"artifact"`

	Tracking struct {
		// Backend is "http", "sqlite" or "none".
		Backend    string `yaml:"backend"`
		URL        string `yaml:"url"`
		Experiment string `yaml:"experiment"`
		Path       string `yaml:"path"`
	} `yaml:"tracking"`
}

func LoadTrain(path string) (TrainConfig, error) {
	cfg := defaultTrain()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read train config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse train config: %w", err)
	}
	if cfg.Split.TestSize <= 0 || cfg.Split.TestSize >= 1 {
		return cfg, fmt.Errorf("train config: test_size must be in (0, 1), got %v", cfg.Split.TestSize)
	}
	return cfg, nil
}

func defaultTrain() TrainConfig {
	var cfg TrainConfig
	cfg.Data.Source = "csv"
	cfg.Data.NRows = 10000
	cfg.Split.TestSize = 0.3
	cfg.Split.Seed = 1
	cfg.Forest = model.DefaultForestConfig()
	cfg.Timezone = "UTC"
	cfg.Artifact.Backend = "file"
	cfg.Artifact.Path = "model.json"
	cfg.Tracking.Backend = "none"
	cfg.Tracking.Experiment = "taxifare"
	cfg.Tracking.Path = "runs.db"
	return cfg
}
