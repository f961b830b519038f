package app

import (
	"context"
	"fmt"
	"log"

	"github.com/newrelic/go-agent/v3/newrelic"

	"hopeplates/internal/config"
	"hopeplates/internal/store"
	"hopeplates/internal/store/postgres"
	"hopeplates/internal/store/sqlite"
)

// NewStore opens the document store selected by cfg.Store.Driver.
// The returned close function releases its connections.
func NewStore(ctx context.Context, cfg *config.Config, nrApp *newrelic.Application) (store.Store, func() error, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := NewDatabase(ctx, cfg.Database, nrApp)
		if err != nil {
			return nil, nil, err
		}
		docStore := postgres.NewDocumentStore(db)
		if err := docStore.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Println("Connected to PostgreSQL")
		return docStore, db.Close, nil

	case config.StoreDriverSQLite:
		docStore, err := sqlite.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Using SQLite store at %s", cfg.Store.SQLitePath)
		return docStore, docStore.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
