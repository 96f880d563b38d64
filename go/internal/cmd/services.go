package main

import (
	"database/sql"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/ncalf/draftboard/go/internal/aggregates"
	"github.com/ncalf/draftboard/go/internal/draft/rules"
	"github.com/ncalf/draftboard/go/internal/nomination"
	"github.com/ncalf/draftboard/go/internal/player"
	playerdb "github.com/ncalf/draftboard/go/internal/player/db"
	"github.com/ncalf/draftboard/go/internal/player/memstore"
	"github.com/ncalf/draftboard/go/internal/session"
)

type Services struct {
	Players    *player.Service
	Views      *aggregates.Service
	Session    *session.Service
	Nomination *nomination.Service
}

// repositories are the storage ports of each app
type repositories struct {
	lifecycle player.PlayerRepository
	views     aggregates.ViewRepository
	pool      nomination.Pool
}

func postgresRepositories(database *sql.DB) repositories {
	queries := playerdb.New(database)
	views := aggregates.NewRepository(queries)
	return repositories{
		lifecycle: player.NewRepository(queries, database, clockwork.NewRealClock()),
		views:     views,
		pool:      views,
	}
}

// memoryRepositories backs everything with one in-process store, for demos
// and local development without Postgres.
func memoryRepositories() repositories {
	store := memstore.New(clockwork.NewRealClock())
	return repositories{
		lifecycle: store,
		views:     store,
		pool:      store,
	}
}

func setupServices(config *Config, repos repositories, backend session.Backend) (*Services, error) {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → Service layer

	rulesCfg, err := config.rulesConfig()
	if err != nil {
		return nil, err
	}
	if err := rulesCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	engine := rules.NewEngine(rulesCfg)

	// Session
	sessionStore := session.NewStore(backend, nil)
	sessionService := session.NewService(sessionStore)

	// Players
	playerApp := player.NewApp(repos.lifecycle, engine, sessionStore)
	playerService := player.NewService(playerApp)

	// Views
	viewsApp := aggregates.NewApp(repos.views, engine, config.Views)
	viewsService := aggregates.NewService(viewsApp)

	// Nomination
	nominationApp := nomination.NewApp(repos.pool, playerApp, sessionStore, nil)
	nominationService := nomination.NewService(nominationApp)

	return &Services{
		Players:    playerService,
		Views:      viewsService,
		Session:    sessionService,
		Nomination: nominationService,
	}, nil
}
