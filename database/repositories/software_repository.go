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

package repositories

import (
	"github.com/l3montree-dev/sdm/database/models"
	"github.com/l3montree-dev/sdm/utils"
	"gorm.io/gorm"
)

type softwareRepository struct {
	utils.Repository[int64, models.Software, *gorm.DB]
	db *gorm.DB
}

func NewSoftwareRepository(db *gorm.DB) *softwareRepository {
	return &softwareRepository{
		db:         db,
		Repository: newGormRepository[int64, models.Software](db),
	}
}

func (r *softwareRepository) ListOrderedByName() ([]models.Software, error) {
	var software []models.Software
	err := r.db.Order("name ASC").Order("id ASC").Find(&software).Error
	return software, err
}

// UpsertByFileName matches the given entries against the catalog by file name.
// Known entries are updated in place, unknown entries are inserted.
func (r *softwareRepository) UpsertByFileName(tx *gorm.DB, software []models.Software) (created int, updated int, err error) {
	db := r.GetDB(tx)
	for i := range software {
		var existing models.Software
		err := db.Where("file_name = ?", software[i].FileName).Order("id ASC").Limit(1).Find(&existing).Error
		if err != nil {
			return created, updated, err
		}

		if existing.ID == 0 {
			if err := db.Create(&software[i]).Error; err != nil {
				return created, updated, err
			}
			created++
			continue
		}

		software[i].ID = existing.ID
		software[i].CreatedAt = existing.CreatedAt
		if err := db.Save(&software[i]).Error; err != nil {
			return created, updated, err
		}
		updated++
	}
	return created, updated, nil
}
