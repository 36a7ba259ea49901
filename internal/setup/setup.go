package setup

import (
	"github.com/unilife-dev/unilife/internal/config"
	"github.com/unilife-dev/unilife/internal/handler"
	"github.com/unilife-dev/unilife/internal/jwt"
	"github.com/unilife-dev/unilife/internal/middleware"
	"github.com/unilife-dev/unilife/internal/service"
	"github.com/unilife-dev/unilife/internal/storage/fs"
	"github.com/unilife-dev/unilife/internal/storage/jsondb"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Store          *jsondb.Store
	Media          *fs.Storage
	Handler        *handler.Handler
	Jwt            jwt.Service
	AuthMiddleware *middleware.Auth
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	store, err := jsondb.New(cfg.Public.DataDir)
	if err != nil {
		return nil, err
	}

	media, err := fs.New(cfg.Public.UploadsDir)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	users := service.NewUsers(store, jwtService)
	feed := service.NewFeed(store, users)
	comments := service.NewComments(store, store, users)
	messages := service.NewMessages(store)

	h := handler.New(users, feed, comments, messages, media, cfg)

	return &Dependencies{
		Config:         cfg,
		Store:          store,
		Media:          media,
		Handler:        h,
		Jwt:            jwtService,
		AuthMiddleware: middleware.NewAuth(jwtService),
	}, nil
}
