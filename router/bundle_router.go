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
	"github.com/l3montree-dev/sdm/controllers"
	"github.com/l3montree-dev/sdm/middlewares"
	"github.com/labstack/echo/v4"
)

type BundleRouter struct {
	*echo.Group
}

func NewBundleRouter(sessionRouter SessionRouter, bundleController *controllers.BundleController, downloadController *controllers.DownloadController, rateLimiter middlewares.ArchiveRateLimiter) BundleRouter {
	bundleRouter := sessionRouter.Group.Group("/bundles")
	bundleRouter.GET("/", bundleController.List)
	bundleRouter.POST("/", bundleController.Create)

	bundleScoped := bundleRouter.Group("/:bundleID")
	bundleScoped.GET("/", bundleController.Read)
	bundleScoped.PATCH("/", bundleController.Update)
	bundleScoped.DELETE("/", bundleController.Delete)
	bundleScoped.GET("/archive/", downloadController.BundleArchive, echo.MiddlewareFunc(rateLimiter))
	bundleScoped.GET("/script/", downloadController.BundleScript)

	return BundleRouter{Group: bundleRouter}
}
