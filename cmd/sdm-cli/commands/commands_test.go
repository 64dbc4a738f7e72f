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

package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/sdm/database/models"
	"github.com/stretchr/testify/assert"
)

func TestPrintBundles(t *testing.T) {
	var buf bytes.Buffer
	printBundles(&buf, []models.Bundle{
		{
			Model:     models.Model{ID: uuid.MustParse("6f1d3a2e-8c4b-4e7f-9a10-2b3c4d5e6f70"), CreatedAt: time.Date(2025, 10, 20, 9, 30, 0, 0, time.UTC)},
			Name:      "Dev Setup",
			IsDefault: true,
			Items:     []models.BundleItem{{SoftwareID: 1}, {SoftwareID: 2}},
		},
		{Name: "Office"},
	})

	out := buf.String()
	assert.Contains(t, out, "Dev Setup")
	assert.Contains(t, out, "6f1d3a2e-8c4b-4e7f-9a10-2b3c4d5e6f70")
	assert.Contains(t, out, "2025-10-20 09:30:00")
	assert.Contains(t, out, "Office")
}

func TestSweepCommand(t *testing.T) {
	dir := t.TempDir()
	cmd := NewSweepCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--scratch-dir", dir, "--max-age", "1h"})

	assert.Nil(t, cmd.Execute())
	assert.Contains(t, buf.String(), "removed 0 expired scratch file(s)")
}
