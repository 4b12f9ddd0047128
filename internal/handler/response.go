package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"gist/feedsync/internal/api"
	"gist/feedsync/internal/engine"
	"gist/feedsync/pkg/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

type acceptedResponse struct {
	Status string `json:"status"`
}

var accepted = acceptedResponse{Status: "accepted"}

func invalidRequest(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
}

func notFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, errorResponse{Error: "resource not found"})
}

// writeError maps engine and transport errors to a status code.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, engine.ErrStopped):
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "engine stopped"})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "request cancelled"})
	case errors.Is(err, api.ErrTransport), errors.Is(err, api.ErrDecode):
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "upstream unavailable"})
	default:
		logger.Error("handler error", "module", "handler", "action", "request", "resource", c.Path(), "result", "failed", "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
