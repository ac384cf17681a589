package source

import (
	"context"
	"fmt"
	"os"

	"github.com/rpggio/listings/internal/domain/project"
)

// FileSource reads a project document from disk on every fetch.
type FileSource struct {
	Path string
}

// Fetch implements project.Source.
func (s FileSource) Fetch(ctx context.Context) ([]project.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open project file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

func (s FileSource) String() string {
	return "file:" + s.Path
}
