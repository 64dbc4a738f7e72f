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

package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/l3montree-dev/sdm/database/models"
	"github.com/l3montree-dev/sdm/shared"
	"github.com/l3montree-dev/sdm/utils"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// CatalogEntry is one software record of a catalog file.
type CatalogEntry struct {
	Name        string `yaml:"name" validate:"required,max=255"`
	Description string `yaml:"description"`
	Size        string `yaml:"size"`
	Category    string `yaml:"category"`
	WebsiteURL  string `yaml:"websiteUrl" validate:"omitempty,url"`
	DownloadURL string `yaml:"downloadUrl" validate:"omitempty,url"`
	IconURL     string `yaml:"iconUrl" validate:"omitempty,url"`
	FileName    string `yaml:"fileName" validate:"required,excludesall=/\\"`
}

type catalogFile struct {
	Software []CatalogEntry `yaml:"software"`
}

type CatalogImportResult struct {
	Created int
	Updated int
}

// ParseCatalog reads a yaml catalog. File names identify entries and have to be unique.
func ParseCatalog(r io.Reader) ([]models.Software, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return nil, shared.NewValidationError("software", "catalog is empty")
		}
		return nil, shared.NewValidationError("software", fmt.Sprintf("could not parse catalog: %s", err))
	}
	if len(file.Software) == 0 {
		return nil, shared.NewValidationError("software", "catalog is empty")
	}

	seen := make(map[string]int, len(file.Software))
	software := make([]models.Software, 0, len(file.Software))
	for i, entry := range file.Software {
		if err := shared.V.Struct(entry); err != nil {
			verr := shared.ValidationErrorFromValidator(err)
			verr.Message = fmt.Sprintf("entry %d: %s", i+1, verr.Message)
			return nil, verr
		}
		key := strings.ToLower(entry.FileName)
		if first, ok := seen[key]; ok {
			return nil, shared.NewValidationError("fileName", fmt.Sprintf("entry %d repeats the file name of entry %d: %s", i+1, first, entry.FileName))
		}
		seen[key] = i + 1

		software = append(software, models.Software{
			Name:        strings.TrimSpace(entry.Name),
			Description: entry.Description,
			Size:        entry.Size,
			Category:    entry.Category,
			WebsiteURL:  utils.EmptyThenNil(entry.WebsiteURL),
			DownloadURL: utils.EmptyThenNil(entry.DownloadURL),
			IconURL:     utils.EmptyThenNil(entry.IconURL),
			FileName:    entry.FileName,
		})
	}
	return software, nil
}

// ImportCatalog parses the catalog and upserts every entry in a single transaction.
func ImportCatalog(softwareRepository shared.SoftwareRepository, r io.Reader) (CatalogImportResult, error) {
	software, err := ParseCatalog(r)
	if err != nil {
		return CatalogImportResult{}, err
	}

	var result CatalogImportResult
	err = softwareRepository.Transaction(func(tx *gorm.DB) error {
		created, updated, err := softwareRepository.UpsertByFileName(tx, software)
		if err != nil {
			return err
		}
		result = CatalogImportResult{Created: created, Updated: updated}
		return nil
	})
	if err != nil {
		return CatalogImportResult{}, shared.NewStorageError("could not import catalog", err)
	}
	return result, nil
}
