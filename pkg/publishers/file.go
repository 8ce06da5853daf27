package publishers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// filePublisher writes the rendered markdown to a local file, overwriting
// the previous digest.
type filePublisher struct {
	id   string
	path string
	log  Logger
}

func newFilePublisher(_ context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	if cfg.File == nil {
		return nil, fmt.Errorf("publisher %q missing file configuration", cfg.ID)
	}
	return &filePublisher{
		id:   cfg.ID,
		path: cfg.File.Path,
		log:  ensureLogger(log),
	}, nil
}

func (f *filePublisher) ID() string   { return f.id }
func (f *filePublisher) Type() string { return TypeFile }

func (f *filePublisher) Publish(_ context.Context, d Digest) error {
	dir := filepath.Dir(f.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create digest directory: %w", err)
		}
	}

	if err := os.WriteFile(f.path, []byte(d.Markdown), 0o644); err != nil {
		return fmt.Errorf("write digest file: %w", err)
	}

	f.log.DebugObj("file publisher wrote digest", "publisher_file_delivery", map[string]any{
		"publisher_id": f.id,
		"path":         f.path,
		"range":        d.Range(),
	})
	return nil
}
