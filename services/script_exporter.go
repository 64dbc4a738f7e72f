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
	"strconv"
	"strings"
	"time"

	"github.com/l3montree-dev/sdm/database/models"
	"github.com/l3montree-dev/sdm/shared"
)

// SoftwareIDPlaceholder is replaced with the software id in download url templates.
const SoftwareIDPlaceholder = "{id}"

// SoftwareURLTemplate points generated scripts at the single file endpoint below apiURL.
func SoftwareURLTemplate(apiURL string) string {
	return strings.TrimSuffix(apiURL, "/") + "/api/v1/downloads/software/" + SoftwareIDPlaceholder + "/"
}

const scriptTitle = "Software Download Manager"

type scriptExporter struct{}

var _ shared.ScriptExporter = scriptExporter{}

func NewScriptExporter() scriptExporter {
	return scriptExporter{}
}

// Render produces an install script which downloads every software entry in
// order. The bearer token is read from SDM_TOKEN when the script runs.
func (e scriptExporter) Render(bundleName string, software []models.Software, urlTemplate string, generatedAt time.Time, flavor shared.ScriptFlavor) (string, error) {
	if !strings.Contains(urlTemplate, SoftwareIDPlaceholder) {
		return "", shared.NewValidationError("urlTemplate", "must contain "+SoftwareIDPlaceholder)
	}

	switch flavor {
	case shared.ScriptFlavorPowerShell:
		return renderPowerShell(bundleName, software, urlTemplate, generatedAt), nil
	case shared.ScriptFlavorShell:
		return renderShell(bundleName, software, urlTemplate, generatedAt), nil
	}
	return "", shared.NewValidationError("format", "must be one of ps1, sh")
}

func downloadURL(urlTemplate string, id int64) string {
	return strings.ReplaceAll(urlTemplate, SoftwareIDPlaceholder, strconv.FormatInt(id, 10))
}

// singleLine keeps user supplied names from breaking out of comments.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func formatGeneratedAt(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05 MST")
}

type scriptWriter struct {
	sb  strings.Builder
	eol string
}

func (w *scriptWriter) line(format string, args ...any) {
	if len(args) == 0 {
		w.sb.WriteString(format)
	} else {
		fmt.Fprintf(&w.sb, format, args...)
	}
	w.sb.WriteString(w.eol)
}

func (w *scriptWriter) String() string {
	return w.sb.String()
}

// psQuote escapes s for a double quoted PowerShell string.
func psQuote(s string) string {
	r := strings.NewReplacer("`", "``", `"`, "`\"", "$", "`$")
	return `"` + r.Replace(singleLine(s)) + `"`
}

func renderPowerShell(bundleName string, software []models.Software, urlTemplate string, generatedAt time.Time) string {
	w := &scriptWriter{eol: "\r\n"}

	w.line("# %s - Bundle: %s", scriptTitle, singleLine(bundleName))
	w.line("# Generated: %s", formatGeneratedAt(generatedAt))
	w.line("")
	w.line(`if (-not $env:SDM_TOKEN) {`)
	w.line(`    Write-Error "SDM_TOKEN is not set"`)
	w.line(`    exit 1`)
	w.line(`}`)
	w.line(`$downloadPath = "$env:USERPROFILE\Downloads\SDM_Installers"`)
	w.line(`New-Item -ItemType Directory -Force -Path $downloadPath | Out-Null`)
	w.line(`Write-Host "Downloading to: $downloadPath" -ForegroundColor Green`)
	w.line("")

	for _, sw := range software {
		w.line("# %s", singleLine(sw.Name))
		w.line("Write-Host %s", psQuote("Downloading: "+sw.Name+"..."))
		w.line(`Invoke-WebRequest -Uri %s -OutFile (Join-Path $downloadPath %s) -Headers @{"Authorization"="Bearer $env:SDM_TOKEN"}`,
			psQuote(downloadURL(urlTemplate, sw.ID)), psQuote(sw.FileName))
		w.line("Write-Host %s -ForegroundColor Cyan", psQuote("  Downloaded "+sw.FileName))
		w.line("")
	}

	w.line(`Write-Host "All downloads complete!" -ForegroundColor Green`)
	return w.String()
}

// shQuote wraps s in single quotes for POSIX shells.
func shQuote(s string) string {
	return "'" + strings.ReplaceAll(singleLine(s), "'", `'\''`) + "'"
}

func renderShell(bundleName string, software []models.Software, urlTemplate string, generatedAt time.Time) string {
	w := &scriptWriter{eol: "\n"}

	w.line("#!/bin/sh")
	w.line("# %s - Bundle: %s", scriptTitle, singleLine(bundleName))
	w.line("# Generated: %s", formatGeneratedAt(generatedAt))
	w.line("set -eu")
	w.line("")
	w.line(`if [ -z "${SDM_TOKEN:-}" ]; then`)
	w.line(`  echo "SDM_TOKEN is not set" >&2`)
	w.line(`  exit 1`)
	w.line(`fi`)
	w.line("")
	w.line(`download_path="${SDM_DOWNLOAD_DIR:-$HOME/Downloads/SDM_Installers}"`)
	w.line(`mkdir -p "$download_path"`)
	w.line(`echo "Downloading to: $download_path"`)
	w.line("")

	for _, sw := range software {
		w.line("# %s", singleLine(sw.Name))
		w.line("echo %s", shQuote("Downloading: "+sw.Name+"..."))
		w.line(`curl -fSL -H "Authorization: Bearer ${SDM_TOKEN}" -o "$download_path"/%s %s`,
			shQuote(sw.FileName), shQuote(downloadURL(urlTemplate, sw.ID)))
		w.line("echo %s", shQuote("  Downloaded "+sw.FileName))
		w.line("")
	}

	w.line(`echo "All downloads complete!"`)
	return w.String()
}
