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

package dtos

import (
	"time"

	"github.com/google/uuid"
)

type BundleCreateRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	SoftwareIDs []int64 `json:"softwareIds" validate:"required,min=1,unique,dive,gt=0"`
	IsDefault   bool    `json:"isDefault"`
}

// BundlePatchRequest only touches the fields which are set.
// SoftwareIDs replaces the whole membership list.
type BundlePatchRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=255"`
	SoftwareIDs *[]int64 `json:"softwareIds" validate:"omitempty,min=1,unique,dive,gt=0"`
	IsDefault   *bool    `json:"isDefault"`
}

type BundleDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	IsDefault   bool      `json:"isDefault"`
	SoftwareIDs []int64   `json:"softwareIds"`
	ItemCount   int       `json:"itemCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type BundleDetailsDTO struct {
	BundleDTO
	Software []SoftwareDTO `json:"software"`
}
