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

package transformer

import (
	"github.com/l3montree-dev/sdm/database/models"
	"github.com/l3montree-dev/sdm/dtos"
	"github.com/l3montree-dev/sdm/utils"
)

func BundleToDTO(b models.Bundle) dtos.BundleDTO {
	ids := b.SoftwareIDs()
	return dtos.BundleDTO{
		ID:          b.ID,
		Name:        b.Name,
		IsDefault:   b.IsDefault,
		SoftwareIDs: ids,
		ItemCount:   len(ids),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func BundlesToDTOs(bundles []models.Bundle) []dtos.BundleDTO {
	return utils.Map(bundles, BundleToDTO)
}

// BundleToDetailsDTO expects the items to be loaded with their software.
func BundleToDetailsDTO(b models.Bundle) dtos.BundleDetailsDTO {
	return dtos.BundleDetailsDTO{
		BundleDTO: BundleToDTO(b),
		Software:  SoftwareToDTOs(b.OrderedSoftware()),
	}
}
