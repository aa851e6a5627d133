package main

import (
	"fmt"

	"showsync/internal/cache"
	"showsync/internal/config"
	"showsync/internal/database"
	"showsync/internal/handlers"
	"showsync/internal/services"
	"showsync/pkg/logger"
)

type app struct {
	cfg       *config.Config
	logger    logger.Logger
	db        *database.BoltDB
	cache     *cache.LRUCache
	container *services.Container
	handler   *handlers.Handler
}

func initializeApp() (*app, error) {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.NewBolt(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	log.Infof("[App] database initialized at %s", cfg.DatabasePath)

	memoryCache := cache.New(cfg.CacheSize, cfg.CacheTTL)

	catalog := services.NewTMDB(cfg.TMDBAPIKey, memoryCache)

	accountURL := cfg.AccountServiceURL
	if accountURL == "" {
		// Same-process default: the client layer talks to our own surface.
		accountURL = "http://localhost:" + serverPort() + "/api/v1"
	}
	account := services.NewAccountClient(accountURL)

	session := services.NewSession(db, log)
	bookmarks := services.NewBookmarkSync(session, account, log)
	resolver := services.NewResolver(catalog, log)
	trailers := services.NewTrailerService(catalog, cfg.FallbackTrailerKey, log)
	bookmarked := services.NewBookmarkedListing(bookmarks, resolver, cfg.SearchDebounce(), log)

	container := &services.Container{
		Catalog:    catalog,
		Account:    account,
		Session:    session,
		Bookmarks:  bookmarks,
		Resolver:   resolver,
		Trailers:   trailers,
		Bookmarked: bookmarked,
		Cache:      memoryCache,
		DB:         db,
		Logger:     log,
	}

	a := &app{
		cfg:       cfg,
		logger:    log,
		db:        db,
		cache:     memoryCache,
		container: container,
		handler:   handlers.New(container, cfg),
	}

	log.Infof("[App] services initialized")
	return a, nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Errorf("[App] failed to close database: %v", err)
	}
}
