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

	"github.com/google/uuid"
	"github.com/l3montree-dev/sdm/dtos"
	"github.com/l3montree-dev/sdm/shared"
	"github.com/l3montree-dev/sdm/transformer"
	"github.com/labstack/echo/v4"
)

type BundleController struct {
	bundleService shared.BundleService
}

func NewBundleController(bundleService shared.BundleService) *BundleController {
	return &BundleController{
		bundleService: bundleService,
	}
}

func bundleIDParam(ctx shared.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(shared.GetParam(ctx, "bundleID"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid bundle id").WithInternal(err)
	}
	return id, nil
}

func (controller *BundleController) List(ctx shared.Context) error {
	bundles, err := controller.bundleService.ListBundles(shared.GetOwnerID(ctx))
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(http.StatusOK, transformer.BundlesToDTOs(bundles))
}

func (controller *BundleController) Create(ctx shared.Context) error {
	var req dtos.BundleCreateRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	bundle, err := controller.bundleService.CreateBundle(shared.GetOwnerID(ctx), req)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusCreated, transformer.BundleToDetailsDTO(bundle))
}

func (controller *BundleController) Read(ctx shared.Context) error {
	bundleID, err := bundleIDParam(ctx)
	if err != nil {
		return err
	}

	bundle, err := controller.bundleService.GetBundle(shared.GetOwnerID(ctx), bundleID)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, transformer.BundleToDetailsDTO(bundle))
}

func (controller *BundleController) Update(ctx shared.Context) error {
	bundleID, err := bundleIDParam(ctx)
	if err != nil {
		return err
	}

	var req dtos.BundlePatchRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	bundle, err := controller.bundleService.UpdateBundle(shared.GetOwnerID(ctx), bundleID, req)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, transformer.BundleToDetailsDTO(bundle))
}

func (controller *BundleController) Delete(ctx shared.Context) error {
	bundleID, err := bundleIDParam(ctx)
	if err != nil {
		return err
	}

	if err := controller.bundleService.DeleteBundle(shared.GetOwnerID(ctx), bundleID); err != nil {
		return toHTTPError(err)
	}

	return ctx.NoContent(http.StatusOK)
}
