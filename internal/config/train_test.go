package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "train.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTrain(t *testing.T) {
	path := writeConfig(t, `
data:
  source: csv
  path: rides.csv
  nrows: 5000
split:
  test_size: 0.25
  seed: 9
forest:
  trees: 30
  max_depth: 12
  min_samples: 4
  seed: 9
timezone: America/New_York
artifact:
  backend: redis
  redis_addr: localhost:6379
  bucket: models
  key: taxifare/model.json
tracking:
  backend: sqlite
  path: runs.db
`)
	cfg, err := LoadTrain(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Data.NRows != 5000 || cfg.Data.Path != "rides.csv" {
		t.Errorf("data section: %+v", cfg.Data)
	}
	if cfg.Forest.Trees != 30 || cfg.Forest.MaxDepth != 12 {
		t.Errorf("forest section: %+v", cfg.Forest)
	}
	if cfg.Timezone != "America/New_York" {
		t.Errorf("timezone = %q", cfg.Timezone)
	}
	if cfg.Artifact.Backend != "redis" || cfg.Artifact.Bucket != "models" {
		t.Errorf("artifact section: %+v", cfg.Artifact)
	}
}

func TestLoadTrainDefaults(t *testing.T) {
	path := writeConfig(t, "data:\n  path: rides.csv\n")
	cfg, err := LoadTrain(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Split.TestSize != 0.3 {
		t.Errorf("default test_size = %v, want 0.3", cfg.Split.TestSize)
	}
	if cfg.Forest.Trees == 0 {
		t.Error("forest defaults not applied")
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("default timezone = %q, want UTC", cfg.Timezone)
	}
}

func TestLoadTrainBadTestSize(t *testing.T) {
	path := writeConfig(t, "split:\n  test_size: 1.5\n")
	if _, err := LoadTrain(path); err == nil {
		t.Error("test_size 1.5 accepted")
	}
}

func TestLoadTrainMissingFile(t *testing.T) {
	if _, err := LoadTrain(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing config accepted")
	}
}
