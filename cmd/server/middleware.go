package main

import (
	"github.com/JaimeStill/scribe/internal/config"
	"github.com/JaimeStill/scribe/pkg/middleware"
)

// buildMiddleware creates the middleware stack applied to every route.
func buildMiddleware(runtime *Runtime, cfg *config.Config) middleware.System {
	mw := middleware.New()
	mw.Use(middleware.TrimSlash())
	mw.Use(middleware.Logger(runtime.Logger))
	mw.Use(middleware.CORS(&cfg.API.CORS))
	mw.Use(middleware.MaxBody(cfg.API.MaxBodyBytes()))
	return mw
}
