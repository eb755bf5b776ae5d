package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/custodia-labs/trawl/internal/adapters/driven/config/file"
	"github.com/custodia-labs/trawl/internal/adapters/driven/provider"
	"github.com/custodia-labs/trawl/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/trawl/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/trawl/internal/adapters/driving/cli"
	"github.com/custodia-labs/trawl/internal/core/ports/driven"
	"github.com/custodia-labs/trawl/internal/core/services"
	"github.com/custodia-labs/trawl/internal/logger"
)

// bootstrap wires driven adapters into the core services.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	dataDir := opts.DataDir
	if dataDir == "" {
		var err error
		if dataDir, err = file.DefaultDir(); err != nil {
			return nil, err
		}
	}

	configStore, err := file.NewConfigStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}

	sitesPath := opts.SitesPath
	if sitesPath == "" {
		sitesPath = filepath.Join(dataDir, file.CatalogFileName)
	}

	factory := provider.NewFactory(ctx)
	sites, err := loadSites(sitesPath, opts.SitesPath != "", factory)
	if err != nil {
		_ = factory.Close()
		return nil, err
	}

	registry, err := services.NewRegistry(sites...)
	if err != nil {
		_ = factory.Close()
		return nil, fmt.Errorf("building registry: %w", err)
	}
	logger.Debug("Registered %d providers", registry.Len())

	var store driven.ItemStore
	if sqliteStore, err := sqlite.NewStore(filepath.Join(dataDir, "data")); err != nil {
		logger.Warn("Item history unavailable, keeping it in memory: %v", err)
		store = memory.NewItemStore()
	} else {
		store = sqliteStore
	}

	counters := memory.NewCounters()
	observers := services.MultiObserver{services.LogObserver{}, counters}
	var recorder *services.Recorder
	if opts.Record {
		recorder = services.NewRecorder(store, 0)
		observers = append(observers, recorder)
	}

	gateway := services.NewGatewayService(registry, observers)
	gateway.SetProviderTimeout(opts.ProviderTimeout)
	gateway.SetMaxFanout(opts.MaxFanout)

	return &cli.Services{
		Gateway:  gateway,
		History:  services.NewHistoryService(store),
		Stats:    services.NewStatsService(counters),
		Actions:  services.NewResultActionService(),
		Settings: services.NewSettingsService(configStore),
		Close: func() error {
			if recorder != nil {
				recorder.Close()
			}
			return errors.Join(store.Close(), factory.Close())
		},
	}, nil
}

// loadSites reads the catalogue and builds one provider per entry.
// A missing default catalogue yields no providers; an explicit path must exist.
func loadSites(path string, explicit bool, factory driven.ProviderFactory) ([]services.Site, error) {
	catalog, err := file.LoadCatalog(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			logger.Warn("No sites catalogue at %s, no providers configured", path)
			return nil, nil
		}
		return nil, err
	}

	sites := make([]services.Site, 0, len(catalog.Sites))
	for i := range catalog.Sites {
		entry := &catalog.Sites[i]
		descriptor, err := entry.Descriptor()
		if err != nil {
			return nil, err
		}
		spec, err := entry.Spec()
		if err != nil {
			return nil, err
		}
		p, err := factory.Create(spec)
		if err != nil {
			return nil, err
		}
		sites = append(sites, services.Site{Descriptor: descriptor, Provider: p})
	}
	return sites, nil
}
