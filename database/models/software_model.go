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
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Software is a catalog entry. The catalog is curated outside of this service.
// Size is the human readable size as curated, e.g. "85.2 MB".
type Software struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:text;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Size        string    `json:"size" gorm:"type:text"`
	Category    string    `json:"category" gorm:"type:text"`
	WebsiteURL  *string   `json:"websiteUrl" gorm:"type:text"`
	DownloadURL *string   `json:"downloadUrl" gorm:"type:text"`
	IconURL     *string   `json:"iconUrl" gorm:"type:text"`
	FileName    string    `json:"fileName" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Software) TableName() string {
	return "software"
}

// DeclaredSizeBytes parses the catalog size. ok is false if the catalog does not carry a parsable size.
func (s Software) DeclaredSizeBytes() (int64, bool) {
	raw := strings.TrimSpace(s.Size)
	if raw == "" {
		return 0, false
	}
	b, err := humanize.ParseBytes(raw)
	if err != nil {
		return 0, false
	}
	return int64(b), true
}
