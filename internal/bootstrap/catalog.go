package bootstrap

import (
	"errors"
	"fmt"
	"os"

	"github.com/isleforge/isleforge/internal/catalog"
	"github.com/isleforge/isleforge/internal/config"
	"github.com/isleforge/isleforge/internal/logger"
)

// LoadCatalog loads the content catalog from the configured directory,
// validating every file against its JSON schema and the set as a whole for
// referential integrity. A missing content directory falls back to the
// built-in catalog; an invalid one is a hard error.
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	logger.Info(LogMsgLoadingContentCatalog, "dir", cfg.ContentDir)

	if _, err := os.Stat(cfg.ContentDir); errors.Is(err, os.ErrNotExist) {
		logger.Warn(LogMsgContentCatalogFallback, "dir", cfg.ContentDir)
		return catalog.Default(), nil
	}

	cat, err := catalog.NewLoader().Load(cfg.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidContentCatalog, err)
	}

	logger.Info(LogMsgContentCatalogLoaded, "dir", cfg.ContentDir)
	return cat, nil
}
