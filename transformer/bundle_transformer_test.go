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
	"testing"

	"github.com/google/uuid"
	"github.com/l3montree-dev/sdm/database/models"
	"github.com/stretchr/testify/assert"
)

func TestBundleToDetailsDTO(t *testing.T) {
	bundleID := uuid.New()
	bundle := models.Bundle{
		Model:     models.Model{ID: bundleID},
		Name:      "Dev Setup",
		IsDefault: true,
		Items: []models.BundleItem{
			{SoftwareID: 3, SortOrder: 2, Software: models.Software{ID: 3, Name: "7-Zip"}},
			{SoftwareID: 9, SortOrder: 1, Software: models.Software{ID: 9, Name: "VLC"}},
		},
	}

	dto := BundleToDetailsDTO(bundle)

	assert.Equal(t, bundleID, dto.ID)
	assert.True(t, dto.IsDefault)
	assert.Equal(t, []int64{9, 3}, dto.SoftwareIDs)
	assert.Equal(t, 2, dto.ItemCount)
	if assert.Len(t, dto.Software, 2) {
		assert.Equal(t, "VLC", dto.Software[0].Name)
		assert.Equal(t, "7-Zip", dto.Software[1].Name)
	}
}

func TestBundleToDTOWithoutItems(t *testing.T) {
	dto := BundleToDTO(models.Bundle{Name: "empty"})

	assert.NotNil(t, dto.SoftwareIDs)
	assert.Empty(t, dto.SoftwareIDs)
	assert.Equal(t, 0, dto.ItemCount)
}
