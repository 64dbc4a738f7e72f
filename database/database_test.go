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

package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetPoolConfigFromEnv(t *testing.T) {
	t.Run("should fall back to the defaults on invalid values", func(t *testing.T) {
		t.Setenv("DB_MAX_OPEN_CONNS", "-3")
		t.Setenv("DB_CONN_MAX_LIFETIME", "soon")

		cfg := GetPoolConfigFromEnv()
		assert.Equal(t, int32(25), cfg.MaxOpenConns)
		assert.Equal(t, 4*time.Hour, cfg.ConnMaxLifetime)
	})

	t.Run("should read the overrides", func(t *testing.T) {
		t.Setenv("POSTGRES_DB", "sdm")
		t.Setenv("DB_MAX_OPEN_CONNS", "50")
		t.Setenv("DB_MIN_CONNS", "0")
		t.Setenv("DB_CONN_MAX_IDLE_TIME", "30s")

		cfg := GetPoolConfigFromEnv()
		assert.Equal(t, "sdm", cfg.DBName)
		assert.Equal(t, int32(50), cfg.MaxOpenConns)
		assert.Equal(t, int32(0), cfg.MinConns)
		assert.Equal(t, 30*time.Second, cfg.ConnMaxIdleTime)
	})
}

func TestGetDSN(t *testing.T) {
	assert.Equal(t, "postgres://u:p@db:5432/sdm?sslmode=disable", getDSN("db", "u", "p", "sdm", "5432"))
}
