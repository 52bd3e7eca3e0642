// README: Offline training job: load, clean, split, fit, evaluate, persist.
package main

import (
	"context"
	"log"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/cheggaaa/pb/v3"

	"farecast/internal/artifact"
	"farecast/internal/config"
	"farecast/internal/dataset"
	"farecast/internal/infra"
	"farecast/internal/model"
	"farecast/internal/tracking"
)

type args struct {
	Config string `arg:"-c,required" help:"path to the training YAML config"`
	NRows  int    `arg:"--nrows" help:"override the configured row bound"`
}

func (args) Version() string {
	return "farecast-train 1.0"
}

func (args) Description() string {
	return "train the fare regression pipeline and persist the artifact"
}

func main() {
	var a args
	arg.MustParse(&a)

	cfg, err := config.LoadTrain(a.Config)
	if err != nil {
		log.Fatal(err)
	}
	if a.NRows > 0 {
		cfg.Data.NRows = a.NRows
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("timezone %q: %v", cfg.Timezone, err)
	}

	ctx := context.Background()

	raw, err := loadRides(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("loaded %d raw rides", raw.Len())

	cleaned := dataset.Clean(raw)
	log.Printf("cleaned: %d rides kept", cleaned.Len())
	if cleaned.Len() == 0 {
		log.Fatal("no rides survived cleaning")
	}

	train, test := dataset.SplitTrainTest(cleaned, cfg.Split.TestSize, cfg.Split.Seed)

	tracker, closeTracker, err := newTracker(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeTracker()

	trainer := model.NewTrainer(cfg.Forest, loc, tracker)
	trainer.Build()

	bar := pb.StartNew(cfg.Forest.Trees)
	trainer.WithProgress(func(done, total int) { bar.Increment() })

	if err := trainer.Fit(train, train.Labels()); err != nil {
		log.Fatal(err)
	}
	bar.Finish()

	metrics, err := trainer.Evaluate(test, test.Labels())
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("run %s: rmse=%.4f mae=%.4f", trainer.RunID(), metrics.RMSE, metrics.MAE)

	store, err := newArtifactStore(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := trainer.Save(ctx, store); err != nil {
		log.Fatal(err)
	}
	log.Printf("artifact saved (%s backend)", cfg.Artifact.Backend)
}

func loadRides(ctx context.Context, cfg config.TrainConfig) (*dataset.Dataset, error) {
	switch cfg.Data.Source {
	case "postgres":
		db, err := infra.NewDB(ctx, cfg.Data.DSN)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return dataset.PGSource{DB: db, Table: cfg.Data.Table, NRows: cfg.Data.NRows}.Load(ctx)
	default:
		return dataset.CSVSource{Path: cfg.Data.Path, NRows: cfg.Data.NRows}.Load()
	}
}

func newTracker(cfg config.TrainConfig) (tracking.Tracker, func(), error) {
	switch cfg.Tracking.Backend {
	case "http":
		return tracking.NewHTTPTracker(cfg.Tracking.URL, cfg.Tracking.Experiment), func() {}, nil
	case "sqlite":
		t, err := tracking.NewSQLiteTracker(cfg.Tracking.Path)
		if err != nil {
			return nil, nil, err
		}
		return t, func() { _ = t.Close() }, nil
	default:
		return tracking.Nop{}, func() {}, nil
	}
}

func newArtifactStore(cfg config.TrainConfig) (artifact.Store, error) {
	if cfg.Artifact.Backend == "redis" {
		client := infra.NewRedis(cfg.Artifact.Redis)
		return artifact.NewRedisStore(client, cfg.Artifact.Bucket, cfg.Artifact.Key), nil
	}
	return artifact.FileStore{Path: cfg.Artifact.Path}, nil
}
