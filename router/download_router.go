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

package router

import (
	"github.com/l3montree-dev/sdm/config"
	"github.com/l3montree-dev/sdm/controllers"
	"github.com/l3montree-dev/sdm/middlewares"
	"github.com/labstack/echo/v4"
)

type DownloadRouter struct {
	*echo.Group
}

func NewDownloadRouter(sessionRouter SessionRouter, downloadController *controllers.DownloadController, rateLimiter middlewares.ArchiveRateLimiter) DownloadRouter {
	downloadRouter := sessionRouter.Group.Group("/downloads")
	downloadRouter.GET("/software/:softwareID/", downloadController.SingleFile)
	downloadRouter.POST("/archive/", downloadController.Archive, echo.MiddlewareFunc(rateLimiter))

	return DownloadRouter{Group: downloadRouter}
}

// NewArchiveRateLimiter shares one limiter store between all archive routes.
func NewArchiveRateLimiter(cfg config.ServerConfig) middlewares.ArchiveRateLimiter {
	return middlewares.ArchiveRateLimiter(middlewares.DownloadRateLimiter(cfg))
}
