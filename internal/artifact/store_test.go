package artifact

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"farecast/internal/dataset"
	"farecast/internal/features"
	"farecast/internal/model"
)

func fittedPipeline(t *testing.T) (*model.Pipeline, *dataset.Dataset) {
	t.Helper()
	ds := &dataset.Dataset{HasFare: true}
	for i := 0; i < 60; i++ {
		ds.Records = append(ds.Records, dataset.Record{
			PickupDatetime:   time.Date(2015, 6, 1+i%28, i%24, 0, 0, 0, time.UTC),
			PickupLatitude:   40.70, PickupLongitude: -73.98,
			DropoffLatitude:  40.70 + 0.001*float64(i%30), DropoffLongitude: -73.95,
			PassengerCount:   1,
			FareAmount:       3 + 0.4*float64(i%30),
		})
	}
	p := &model.Pipeline{
		Pre: features.NewPreprocessor(time.UTC),
		Reg: model.NewForest(model.ForestConfig{Trees: 8, MaxDepth: 5, MinSamples: 2, Seed: 11}),
	}
	if err := p.Fit(ds, ds.Labels()); err != nil {
		t.Fatal(err)
	}
	return p, ds
}

func TestFileStoreRoundTrip(t *testing.T) {
	p, ds := fittedPipeline(t)
	store := FileStore{Path: filepath.Join(t.TempDir(), "model.json")}
	ctx := context.Background()

	if err := store.Save(ctx, p); err != nil {
		t.Fatal(err)
	}
	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}

	want, err := p.Predict(ds)
	if err != nil {
		t.Fatal(err)
	}
	got, err := loaded.Predict(ds)
	if err != nil {
		t.Fatal(err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: reloaded prediction %v, in-memory %v", i, got[i], want[i])
		}
	}
}

func TestFileStoreMissing(t *testing.T) {
	store := FileStore{Path: filepath.Join(t.TempDir(), "absent.json")}
	if _, err := store.Load(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestLoadRejectsWrongFormatVersion(t *testing.T) {
	p, _ := fittedPipeline(t)
	blob, err := encode(p)
	if err != nil {
		t.Fatal(err)
	}

	var env map[string]any
	if err := json.Unmarshal(blob, &env); err != nil {
		t.Fatal(err)
	}
	env["format_version"] = formatVersion + 1
	blob, err = json.Marshal(env)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (FileStore{Path: path}).Load(context.Background()); !errors.Is(err, ErrIncompatible) {
		t.Errorf("got %v, want ErrIncompatible", err)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (FileStore{Path: path}).Load(context.Background()); !errors.Is(err, ErrIncompatible) {
		t.Errorf("got %v, want ErrIncompatible", err)
	}
}

func TestEncodeRejectsUnfittedPipeline(t *testing.T) {
	p := &model.Pipeline{
		Pre: features.NewPreprocessor(time.UTC),
		Reg: model.NewForest(model.DefaultForestConfig()),
	}
	if _, err := encode(p); err == nil {
		t.Error("unfitted pipeline encoded")
	}
}
