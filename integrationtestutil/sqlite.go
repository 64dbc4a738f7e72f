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

package integrationtestutil

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/l3montree-dev/sdm/database/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitSQLiteDB returns a migrated in-memory database. The pool is limited to a
// single connection, so concurrent transactions are serialized and the
// in-memory database lives as long as the test.
func InitSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&models.Software{}, &models.Bundle{}, &models.BundleItem{}))
	return db
}

// CreateSoftware inserts one catalog entry per name. The file name is derived from the name.
func CreateSoftware(t testing.TB, db *gorm.DB, names ...string) []models.Software {
	t.Helper()

	software := make([]models.Software, len(names))
	for i, name := range names {
		software[i] = models.Software{
			Name:     name,
			Size:     "1 MB",
			Category: "tools",
			FileName: fmt.Sprintf("%s-setup.exe", name),
		}
	}
	require.NoError(t, db.Create(&software).Error)
	return software
}
