package router

import (
	"github.com/journalkeeper/api/internal/application"
	"github.com/journalkeeper/api/internal/container"
	pginfra "github.com/journalkeeper/api/internal/infrastructure/postgres"
	handlers "github.com/journalkeeper/api/internal/interface/http"
	"github.com/journalkeeper/api/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it with the router registry. Called once during startup.
func InitModules(r *Registry) {
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	entryRepo := pginfra.NewEntryRepository(container.GetPGPool())

	auth := application.NewAuthService(userRepo, logger)
	userSvc := application.NewUserService(userRepo, logger)
	entrySvc := application.NewEntryService(entryRepo, logger, container.GetES(), container.GetConfig().ESEntriesIndex)

	r.Add(modules.NewUser(handlers.NewUserHandler(userSvc, logger), auth))
	r.Add(modules.NewEntry(handlers.NewEntryHandler(entrySvc, logger), auth))
}
