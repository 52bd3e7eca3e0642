// README: Artifact persistence contract and the local-file store.
package artifact

import (
	"context"
	"fmt"
	"os"

	"farecast/internal/model"
)

// Store persists and reloads a fitted pipeline as one blob. Local and remote
// destinations are functionally identical from the caller's perspective.
type Store interface {
	Save(ctx context.Context, p *model.Pipeline) error
	Load(ctx context.Context) (*model.Pipeline, error)
}

// FileStore keeps the artifact at a local path.
type FileStore struct {
	Path string
}

func (s FileStore) Save(_ context.Context, p *model.Pipeline) error {
	blob, err := encode(p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.Path, blob, 0o644); err != nil {
		return fmt.Errorf("write artifact %s: %w", s.Path, err)
	}
	return nil
}

func (s FileStore) Load(_ context.Context) (*model.Pipeline, error) {
	blob, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, s.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", s.Path, err)
	}
	return decode(blob)
}
