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

package controllers

import (
	"net/http"
	"strconv"

	"github.com/l3montree-dev/sdm/config"
	"github.com/l3montree-dev/sdm/dtos"
	"github.com/l3montree-dev/sdm/services"
	"github.com/l3montree-dev/sdm/shared"
	"github.com/labstack/echo/v4"
)

type DownloadController struct {
	downloadService shared.DownloadService
	urlTemplate     string
}

func NewDownloadController(downloadService shared.DownloadService, cfg config.ServerConfig) *DownloadController {
	return &DownloadController{
		downloadService: downloadService,
		urlTemplate:     services.SoftwareURLTemplate(cfg.APIURL),
	}
}

func (controller *DownloadController) SingleFile(ctx shared.Context) error {
	softwareID, err := strconv.ParseInt(shared.GetParam(ctx, "softwareID"), 10, 64)
	if err != nil || softwareID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid software id")
	}

	download, err := controller.downloadService.GetSingleFile(ctx.Request().Context(), shared.GetOwnerID(ctx), softwareID)
	if err != nil {
		return toHTTPError(err)
	}

	return sendDownload(ctx, download)
}

func (controller *DownloadController) Archive(ctx shared.Context) error {
	var req dtos.ArchiveRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	download, err := controller.downloadService.GetFilesAsArchive(ctx.Request().Context(), shared.GetOwnerID(ctx), req.SoftwareIDs)
	if err != nil {
		return toHTTPError(err)
	}

	return sendDownload(ctx, download)
}

func (controller *DownloadController) BundleArchive(ctx shared.Context) error {
	bundleID, err := bundleIDParam(ctx)
	if err != nil {
		return err
	}

	download, err := controller.downloadService.DownloadBundleArchive(ctx.Request().Context(), shared.GetOwnerID(ctx), bundleID)
	if err != nil {
		return toHTTPError(err)
	}

	return sendDownload(ctx, download)
}

func (controller *DownloadController) BundleScript(ctx shared.Context) error {
	bundleID, err := bundleIDParam(ctx)
	if err != nil {
		return err
	}

	flavor, err := shared.ParseScriptFlavor(ctx.QueryParam("format"))
	if err != nil {
		return toHTTPError(err)
	}

	download, err := controller.downloadService.ExportBundleScript(ctx.Request().Context(), shared.GetOwnerID(ctx), bundleID, flavor, controller.urlTemplate)
	if err != nil {
		return toHTTPError(err)
	}

	return sendDownload(ctx, download)
}
