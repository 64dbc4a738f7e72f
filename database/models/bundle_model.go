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

package models

import (
	"slices"

	"github.com/google/uuid"
)

// Bundle is a named, ordered selection of catalog software owned by a single user.
// At most one bundle per owner has IsDefault set.
type Bundle struct {
	Model
	OwnerID   string       `json:"ownerId" gorm:"type:text;not null;index:idx_bundles_owner;index:idx_bundles_single_default,unique,where:is_default = true"`
	Name      string       `json:"name" gorm:"type:text;not null"`
	IsDefault bool         `json:"isDefault" gorm:"not null;default:false"`
	Items     []BundleItem `json:"items" gorm:"foreignKey:BundleID;references:ID;constraint:OnDelete:CASCADE;"`
}

func (Bundle) TableName() string {
	return "bundles"
}

type BundleItem struct {
	Model
	BundleID   uuid.UUID `json:"bundleId" gorm:"type:uuid;not null;uniqueIndex:idx_bundle_items_bundle_software"`
	SoftwareID int64     `json:"softwareId" gorm:"not null;uniqueIndex:idx_bundle_items_bundle_software"`
	Software   Software  `json:"software" gorm:"foreignKey:SoftwareID;references:ID;constraint:OnDelete:CASCADE;"`
	// SortOrder is 1-based and contiguous inside a bundle.
	SortOrder int `json:"sortOrder" gorm:"not null"`
}

func (BundleItem) TableName() string {
	return "bundle_items"
}

// OrderedItems returns a copy of the items sorted by their membership position.
func (b Bundle) OrderedItems() []BundleItem {
	items := slices.Clone(b.Items)
	slices.SortStableFunc(items, func(a, b BundleItem) int {
		return a.SortOrder - b.SortOrder
	})
	return items
}

func (b Bundle) SoftwareIDs() []int64 {
	items := b.OrderedItems()
	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.SoftwareID
	}
	return ids
}

// OrderedSoftware returns the resolved software in membership order. Items
// must have been loaded with their Software association.
func (b Bundle) OrderedSoftware() []Software {
	items := b.OrderedItems()
	res := make([]Software, len(items))
	for i, item := range items {
		res[i] = item.Software
	}
	return res
}

// NewBundleItems builds the membership rows for softwareIDs with a 1-based sort order.
func NewBundleItems(bundleID uuid.UUID, softwareIDs []int64) []BundleItem {
	items := make([]BundleItem, len(softwareIDs))
	for i, id := range softwareIDs {
		items[i] = BundleItem{
			BundleID:   bundleID,
			SoftwareID: id,
			SortOrder:  i + 1,
		}
	}
	return items
}
