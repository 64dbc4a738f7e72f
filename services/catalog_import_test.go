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
	"strings"
	"testing"

	"github.com/l3montree-dev/sdm/database/models"
	"github.com/l3montree-dev/sdm/database/repositories"
	"github.com/l3montree-dev/sdm/integrationtestutil"
	"github.com/l3montree-dev/sdm/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `
software:
  - name: Mozilla Firefox
    description: Open-source web browser with privacy focus
    size: 78.4 MB
    category: Browser
    websiteUrl: https://www.mozilla.org/firefox/
    fileName: firefox_installer.exe
  - name: VLC
    size: 40 MB
    category: Media
    fileName: vlc_installer.exe
`

func TestParseCatalog(t *testing.T) {
	t.Run("should map the entries to catalog records", func(t *testing.T) {
		software, err := ParseCatalog(strings.NewReader(testCatalog))
		require.NoError(t, err)
		require.Len(t, software, 2)

		assert.Equal(t, "Mozilla Firefox", software[0].Name)
		assert.Equal(t, "https://www.mozilla.org/firefox/", *software[0].WebsiteURL)
		assert.Nil(t, software[0].DownloadURL)
		assert.Equal(t, "vlc_installer.exe", software[1].FileName)
	})

	t.Run("should reject invalid catalogs", func(t *testing.T) {
		cases := map[string]string{
			"empty":              ``,
			"no entries":         "software: []\n",
			"unknown field":      "software:\n  - name: a\n    fileName: a.exe\n    price: 3\n",
			"missing file name":  "software:\n  - name: a\n",
			"path in file name":  "software:\n  - name: a\n    fileName: ../a.exe\n",
			"duplicate name":     "software:\n  - name: a\n    fileName: a.exe\n  - name: b\n    fileName: A.EXE\n",
			"malformed url":      "software:\n  - name: a\n    fileName: a.exe\n    websiteUrl: not a url\n",
			"not a yaml mapping": "- a\n- b\n",
		}
		for name, catalog := range cases {
			_, err := ParseCatalog(strings.NewReader(catalog))
			assert.True(t, shared.IsValidation(err), name)
		}
	})
}

func TestImportCatalog(t *testing.T) {
	db := integrationtestutil.InitSQLiteDB(t)
	repository := repositories.NewSoftwareRepository(db)

	result, err := ImportCatalog(repository, strings.NewReader(testCatalog))
	require.NoError(t, err)
	assert.Equal(t, CatalogImportResult{Created: 2}, result)

	var firefox models.Software
	require.NoError(t, db.Where("file_name = ?", "firefox_installer.exe").First(&firefox).Error)

	updatedCatalog := strings.Replace(testCatalog, "78.4 MB", "80 MB", 1)
	result, err = ImportCatalog(repository, strings.NewReader(updatedCatalog))
	require.NoError(t, err)
	assert.Equal(t, CatalogImportResult{Updated: 2}, result)

	var reloaded models.Software
	require.NoError(t, db.First(&reloaded, firefox.ID).Error)
	assert.Equal(t, "80 MB", reloaded.Size)

	var count int64
	require.NoError(t, db.Model(&models.Software{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
