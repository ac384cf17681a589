// Package source provides the project.Source implementations catalogs load
// from.
package source

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rpggio/listings/internal/config"
	"github.com/rpggio/listings/internal/domain/project"
)

// ErrNoStore indicates the sqlite kind was selected without a store.
var ErrNoStore = errors.New("sqlite source needs a project store")

const defaultHTTPTimeout = 15 * time.Second

// New builds the source selected by cfg. store backs the sqlite kind and
// may be nil for the others.
func New(cfg config.SourceConfig, store project.Source) (project.Source, error) {
	switch cfg.Kind {
	case config.SourceFile:
		return FileSource{Path: cfg.Location}, nil
	case config.SourceHTTP:
		return HTTPSource{
			URL:    cfg.Location,
			Client: &http.Client{Timeout: defaultHTTPTimeout},
		}, nil
	case config.SourceSQLite:
		if store == nil {
			return nil, ErrNoStore
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
	}
}
