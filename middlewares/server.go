// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package middlewares

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/l3montree-dev/sdm/config"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func registerMiddlewares(e *echo.Echo, cfg config.ServerConfig) {
	e.Pre(middleware.AddTrailingSlash())
	e.Use(middleware.CORSWithConfig(
		middleware.CORSConfig{
			AllowOrigins:     cfg.FrontendURLs,
			AllowHeaders:     append(middleware.DefaultCORSConfig.AllowHeaders, echo.HeaderAuthorization, "X-Session-Token"),
			AllowMethods:     middleware.DefaultCORSConfig.AllowMethods,
			AllowCredentials: true,
			// browsers only hand the file name to scripts if the header is exposed
			ExposeHeaders: []string{echo.HeaderContentDisposition, echo.HeaderContentLength},
		},
	))

	e.Use(logger())

	e.Use(recovermiddleware())

	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		handleError(e, err, ctx)
	}
}

func handleError(e *echo.Echo, err error, ctx echo.Context) {
	// do the logging straight inside the error handler
	// this keeps controller methods clean
	slog.Error(err.Error(), "method", ctx.Request().Method, "path", ctx.Request().URL)

	// the body was already started, nothing sensible can be written anymore
	if ctx.Response().Committed {
		return
	}

	// a failed download must not look like an attachment
	header := ctx.Response().Header()
	header.Del(echo.HeaderContentType)
	header.Del(echo.HeaderContentDisposition)
	header.Del(echo.HeaderContentLength)

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		he = &echo.HTTPError{
			Code:    http.StatusInternalServerError,
			Message: http.StatusText(http.StatusInternalServerError),
		}
	}

	var message any
	switch m := he.Message.(type) {
	case string:
		if e.Debug && he.Internal != nil {
			message = echo.Map{"message": m, "error": he.Internal.Error()}
		} else {
			message = echo.Map{"message": m}
		}
	case json.Marshaler, echo.Map:
		message = m
	case error:
		message = echo.Map{"message": m.Error()}
	default:
		message = m
	}

	if ctx.Request().Method == http.MethodHead {
		if err := ctx.NoContent(he.Code); err != nil {
			slog.Error("could not send error response", "error", err)
		}
		return
	}
	if err := ctx.JSON(he.Code, message); err != nil {
		slog.Error("could not send error response", "error", err)
	}
}

func Server(cfg config.ServerConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(99)
	registerMiddlewares(e, cfg)
	return e
}
