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

	"github.com/l3montree-dev/sdm/shared"
	"github.com/l3montree-dev/sdm/transformer"
)

type SoftwareController struct {
	softwareService shared.SoftwareService
}

func NewSoftwareController(softwareService shared.SoftwareService) *SoftwareController {
	return &SoftwareController{
		softwareService: softwareService,
	}
}

// List returns the whole catalog ordered by name.
func (controller *SoftwareController) List(ctx shared.Context) error {
	software, err := controller.softwareService.List()
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(http.StatusOK, transformer.SoftwareToDTOs(software))
}
