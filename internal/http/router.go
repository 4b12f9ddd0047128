package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"gist/feedsync/internal/handler"
)

func NewRouter(
	stateHandler *handler.StateHandler,
	intentHandler *handler.IntentHandler,
	myFeedHandler *handler.MyFeedHandler,
	opmlHandler *handler.OPMLHandler,
	staticDir string,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(RequestLoggerMiddleware())

	api := e.Group("/api")
	stateHandler.RegisterRoutes(api)
	intentHandler.RegisterRoutes(api)
	myFeedHandler.RegisterRoutes(api)
	opmlHandler.RegisterRoutes(api)

	registerStatic(e, staticDir)
	return e
}
