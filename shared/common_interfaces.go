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

package shared

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/sdm/database/models"
	"github.com/l3montree-dev/sdm/dtos"
	"github.com/l3montree-dev/sdm/utils"
	"github.com/ory/client-go"
	"github.com/spf13/afero"
)

type AdminClient interface {
	GetIdentityFromCookie(ctx context.Context, cookie string) (client.Identity, error)
	GetIdentityFromSessionToken(ctx context.Context, token string) (client.Identity, error)
}

type SoftwareRepository interface {
	utils.Repository[int64, models.Software, DB]
	ListOrderedByName() ([]models.Software, error)
	UpsertByFileName(tx DB, software []models.Software) (created int, updated int, err error)
}

type BundleRepository interface {
	utils.Repository[uuid.UUID, models.Bundle, DB]
	// ListByOwner returns the bundles of the owner, default first, then newest first.
	ListByOwner(ownerID string) ([]models.Bundle, error)
	// ReadWithSoftware loads the bundle with its items and their software.
	ReadWithSoftware(tx DB, id uuid.UUID) (models.Bundle, error)
	// LockOwner serializes default flag changes of a single owner for the rest of tx.
	LockOwner(tx DB, ownerID string) error
	ClearDefaults(tx DB, ownerID string, except uuid.UUID) error
	ReplaceItems(tx DB, bundleID uuid.UUID, softwareIDs []int64) error
	UpdateFields(tx DB, id uuid.UUID, fields map[string]any) error
}

type SoftwareService interface {
	List() ([]models.Software, error)
	// Resolve returns the catalog records for ids in the order of ids.
	// Unknown ids are reported as a ValidationError.
	Resolve(ids []int64) ([]models.Software, error)
}

type BundleService interface {
	ListBundles(ownerID string) ([]models.Bundle, error)
	CreateBundle(ownerID string, req dtos.BundleCreateRequest) (models.Bundle, error)
	GetBundle(ownerID string, id uuid.UUID) (models.Bundle, error)
	UpdateBundle(ownerID string, id uuid.UUID, req dtos.BundlePatchRequest) (models.Bundle, error)
	DeleteBundle(ownerID string, id uuid.UUID) error
}

type DownloadService interface {
	GetSingleFile(ctx context.Context, ownerID string, softwareID int64) (Download, error)
	GetFilesAsArchive(ctx context.Context, ownerID string, softwareIDs []int64) (Download, error)
	DownloadBundleArchive(ctx context.Context, ownerID string, bundleID uuid.UUID) (Download, error)
	ExportBundleScript(ctx context.Context, ownerID string, bundleID uuid.UUID, flavor ScriptFlavor, urlTemplate string) (Download, error)
}

type ScriptExporter interface {
	Render(bundleName string, software []models.Software, urlTemplate string, generatedAt time.Time, flavor ScriptFlavor) (string, error)
}

type BlobStore interface {
	Stat(ctx context.Context, fileName string) (BlobInfo, error)
	Open(ctx context.Context, fileName string) (io.ReadCloser, error)
}

type TempArtifactManager interface {
	// Allocate creates a new, uniquely named scratch file.
	Allocate(prefix string) (afero.File, error)
	// Sweep removes scratch files older than maxAge and returns how many were removed.
	Sweep(maxAge time.Duration) int
	// SweepAsync runs Sweep in the background unless a sweep is already running.
	SweepAsync(maxAge time.Duration)
	// EnsureFreeSpace fails with an IOError if the scratch directory cannot hold required bytes.
	EnsureFreeSpace(required int64) error
	ReleaseAfterSend(path string)
}

type ArchiveBuilder interface {
	Build(ctx context.Context, entries []ArchiveEntry, outputName string) (ArchiveHandle, error)
}

type DaemonRunner interface {
	Start()
	Stop()
}
