// README: Batch prediction: score an unlabeled rides file into a submission CSV.
package main

import (
	"context"
	"log"
	"os"

	"github.com/alexflint/go-arg"

	"farecast/internal/artifact"
	"farecast/internal/dataset"
	"farecast/internal/infra"
	"farecast/internal/inference"
)

type args struct {
	Input  string `arg:"-i,required" help:"path to the unlabeled rides CSV"`
	Output string `arg:"-o" default:"predictions.csv" help:"submission file to write"`
	NRows  int    `arg:"--nrows" help:"bound the number of input rows"`

	Artifact string `arg:"--artifact" default:"model.json" help:"local artifact path"`
	Redis    string `arg:"--redis" help:"redis address; when set, load the artifact remotely"`
	Bucket   string `arg:"--bucket" default:"farecast-models" help:"remote artifact bucket"`
	Key      string `arg:"--key" default:"models/taxifare/model.json" help:"remote artifact key"`
}

func (args) Description() string {
	return "run the fitted pipeline over a full dataset and export key,fare_amount"
}

func main() {
	var a args
	arg.MustParse(&a)

	ctx := context.Background()

	var store artifact.Store = artifact.FileStore{Path: a.Artifact}
	if a.Redis != "" {
		store = artifact.NewRedisStore(infra.NewRedis(a.Redis), a.Bucket, a.Key)
	}

	ds, err := dataset.CSVSource{Path: a.Input, NRows: a.NRows}.Load()
	if err != nil {
		log.Fatal(err)
	}

	svc := inference.NewService(store)
	fares, err := svc.PredictBatch(ctx, ds)
	if err != nil {
		log.Fatal(err)
	}

	out, err := os.Create(a.Output)
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()
	if err := dataset.WriteSubmission(out, ds.Keys(), fares); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d predictions to %s", len(fares), a.Output)
}
