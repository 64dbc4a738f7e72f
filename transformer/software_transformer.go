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

func SoftwareToDTO(s models.Software) dtos.SoftwareDTO {
	return dtos.SoftwareDTO{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Size:        s.Size,
		Category:    s.Category,
		WebsiteURL:  s.WebsiteURL,
		DownloadURL: s.DownloadURL,
		IconURL:     s.IconURL,
		FileName:    s.FileName,
	}
}

func SoftwareToDTOs(software []models.Software) []dtos.SoftwareDTO {
	return utils.Map(software, SoftwareToDTO)
}
