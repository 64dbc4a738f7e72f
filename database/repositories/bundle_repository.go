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
	"github.com/google/uuid"
	"github.com/l3montree-dev/sdm/database/models"
	"github.com/l3montree-dev/sdm/utils"
	"gorm.io/gorm"
)

type bundleRepository struct {
	utils.Repository[uuid.UUID, models.Bundle, *gorm.DB]
	db *gorm.DB
}

func NewBundleRepository(db *gorm.DB) *bundleRepository {
	return &bundleRepository{
		db:         db,
		Repository: newGormRepository[uuid.UUID, models.Bundle](db),
	}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC")
}

func (r *bundleRepository) ListByOwner(ownerID string) ([]models.Bundle, error) {
	var bundles []models.Bundle
	err := r.db.Preload("Items", orderedItems).
		Where("owner_id = ?", ownerID).
		Order("is_default DESC").
		Order("created_at DESC").
		Find(&bundles).Error
	return bundles, err
}

func (r *bundleRepository) ReadWithSoftware(tx *gorm.DB, id uuid.UUID) (models.Bundle, error) {
	var bundle models.Bundle
	err := r.GetDB(tx).Preload("Items", orderedItems).Preload("Items.Software").First(&bundle, "id = ?", id).Error
	return bundle, err
}

// LockOwner takes a transaction scoped advisory lock on PostgreSQL. Other
// dialects serialize writers on their own.
func (r *bundleRepository) LockOwner(tx *gorm.DB, ownerID string) error {
	db := r.GetDB(tx)
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	return db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", ownerID).Error
}

func (r *bundleRepository) ClearDefaults(tx *gorm.DB, ownerID string, except uuid.UUID) error {
	return r.GetDB(tx).Model(&models.Bundle{}).
		Where("owner_id = ? AND is_default = ? AND id <> ?", ownerID, true, except).
		Update("is_default", false).Error
}

// ReplaceItems drops the whole membership of the bundle and inserts softwareIDs in order.
func (r *bundleRepository) ReplaceItems(tx *gorm.DB, bundleID uuid.UUID, softwareIDs []int64) error {
	db := r.GetDB(tx)
	if err := db.Where("bundle_id = ?", bundleID).Delete(&models.BundleItem{}).Error; err != nil {
		return err
	}
	if len(softwareIDs) == 0 {
		return nil
	}
	items := models.NewBundleItems(bundleID, softwareIDs)
	return db.Create(&items).Error
}

func (r *bundleRepository) UpdateFields(tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.GetDB(tx).Model(&models.Bundle{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes the items explicitly, so the result does not depend on
// foreign key enforcement of the dialect.
func (r *bundleRepository) Delete(tx *gorm.DB, id uuid.UUID) error {
	db := r.GetDB(tx)
	if err := db.Where("bundle_id = ?", id).Delete(&models.BundleItem{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.Bundle{}, "id = ?", id).Error
}
