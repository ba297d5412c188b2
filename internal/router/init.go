package router

import (
	userapp "github.com/oksasatya/go-social-api/internal/application"
	"github.com/oksasatya/go-social-api/internal/container"
	pginfra "github.com/oksasatya/go-social-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-social-api/internal/interface/http"
	"github.com/oksasatya/go-social-api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup after the container is populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	postRepo := pginfra.NewPostRepository(container.GetPGPool())
	indexer := userapp.NewUserIndexer(container.GetES(), cfg.ESUsersIndex, container.GetLogger())

	authSvc := userapp.NewAuthService(
		userRepo,
		container.GetJWT(),
		container.GetRedis(),
		container.GetLogger(),
		indexer,
		container.GetRabbitPub(),
		cfg.AppName,
		cfg.MailSendEnabled,
	)
	profileSvc := userapp.NewProfileService(
		userRepo,
		postRepo,
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetRedis(),
		container.GetLogger(),
		indexer,
	)
	followSvc := userapp.NewFollowService(
		userRepo,
		container.GetLogger(),
		container.GetRabbitPub(),
		cfg.MailSendEnabled,
	)

	authHandler := handlers.NewAuthHandler(authSvc, container.GetLogger(), cfg.CookieDomain, cfg.CookieSecure)
	profileHandler := handlers.NewProfileHandler(profileSvc, container.GetLogger())
	followHandler := handlers.NewFollowHandler(followSvc, container.GetLogger())

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewUserModule(profileHandler, followHandler, container.GetJWT()))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
