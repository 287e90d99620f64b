package router

import (
	"github.com/astrocat-app/astrocat/internal/application"
	"github.com/astrocat-app/astrocat/internal/container"
	pginfra "github.com/astrocat-app/astrocat/internal/infrastructure/postgres"
	handlers "github.com/astrocat-app/astrocat/internal/interface/http"
	"github.com/astrocat-app/astrocat/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	pool := container.GetPGPool()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(pool)
	newsRepo := pginfra.NewNewsRepository(pool)
	systemRepo := pginfra.NewSpaceSystemRepository(pool)
	objectRepo := pginfra.NewSpaceObjectRepository(pool)

	userSvc := application.NewUserService(
		userRepo,
		container.GetJWT(),
		container.GetRedis(),
		container.GetGCS(),
		cfg.GCSBucket,
		logger,
		container.GetRabbitPub(),
		cfg.MailSendEnabled,
	)
	newsSvc := application.NewNewsService(newsRepo, userRepo, container.GetGCS(), cfg.GCSBucket, logger)
	catalogSvc := application.NewCatalogService(
		systemRepo,
		objectRepo,
		userRepo,
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetES(),
		cfg.ESObjectsIndex,
		logger,
		cfg.SuperUserID,
	)

	userHandler := handlers.NewUserHandler(userSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	newsHandler := handlers.NewNewsHandler(newsSvc, logger)
	catalogHandler := handlers.NewCatalogHandler(catalogSvc, logger)

	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
	r.Add(modules.NewNewsModule(newsHandler, container.GetJWT()))
	r.Add(modules.NewCatalogModule(catalogHandler, container.GetJWT()))
}
