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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/l3montree-dev/sdm/config"
	"github.com/l3montree-dev/sdm/database/models"
	"github.com/l3montree-dev/sdm/monitoring"
	"github.com/l3montree-dev/sdm/shared"
	"github.com/l3montree-dev/sdm/utils"
	"golang.org/x/sync/errgroup"
)

const (
	archiveContentType = "application/zip"
	scriptContentType  = "text/plain; charset=UTF-8"
)

// downloadService resolves download requests into files and hands them to
// the archive builder or streams them directly.
type downloadService struct {
	cfg             config.ArchiveConfig
	softwareService shared.SoftwareService
	bundleService   shared.BundleService
	blobStore       shared.BlobStore
	archiveBuilder  shared.ArchiveBuilder
	scriptExporter  shared.ScriptExporter
	now             func() time.Time
}

var _ shared.DownloadService = (*downloadService)(nil)

func NewDownloadService(
	cfg config.ArchiveConfig,
	softwareService shared.SoftwareService,
	bundleService shared.BundleService,
	blobStore shared.BlobStore,
	archiveBuilder shared.ArchiveBuilder,
	scriptExporter shared.ScriptExporter,
) *downloadService {
	return &downloadService{
		cfg:             cfg,
		softwareService: softwareService,
		bundleService:   bundleService,
		blobStore:       blobStore,
		archiveBuilder:  archiveBuilder,
		scriptExporter:  scriptExporter,
		now:             time.Now,
	}
}

func (s *downloadService) GetSingleFile(ctx context.Context, ownerID string, softwareID int64) (shared.Download, error) {
	software, err := s.softwareService.Resolve([]int64{softwareID})
	if err != nil {
		if shared.IsValidation(err) {
			return shared.Download{}, shared.NewNotFoundError("software not found", err)
		}
		return shared.Download{}, err
	}
	sw := software[0]

	info, err := s.blobStore.Stat(ctx, sw.FileName)
	if err != nil {
		if shared.IsNotFound(err) {
			return shared.Download{}, shared.NewNotFoundError("no files available", err)
		}
		return shared.Download{}, err
	}
	rc, err := s.blobStore.Open(ctx, sw.FileName)
	if err != nil {
		if shared.IsNotFound(err) {
			return shared.Download{}, shared.NewNotFoundError("no files available", err)
		}
		return shared.Download{}, err
	}

	monitoring.DownloadsTotal.WithLabelValues("single").Inc()
	slog.Debug("serving single file", "ownerID", ownerID, "softwareID", sw.ID, "fileName", sw.FileName)

	return shared.Download{
		FileName:      sw.FileName,
		ContentType:   info.MimeType,
		ContentLength: info.Size,
		Payload:       newStreamPayload(rc),
	}, nil
}

func (s *downloadService) GetFilesAsArchive(ctx context.Context, ownerID string, softwareIDs []int64) (shared.Download, error) {
	if len(softwareIDs) == 0 {
		return shared.Download{}, shared.NewValidationError("softwareIds", "must not be empty")
	}
	ids := utils.UniqBy(softwareIDs, func(id int64) int64 { return id })

	software, err := s.softwareService.Resolve(ids)
	if err != nil {
		return shared.Download{}, err
	}

	download, err := s.archive(ctx, software, s.cfg.ProductName+".zip")
	if err != nil {
		return shared.Download{}, err
	}
	monitoring.DownloadsTotal.WithLabelValues("archive").Inc()
	slog.Debug("serving archive", "ownerID", ownerID, "requested", len(ids))
	return download, nil
}

func (s *downloadService) DownloadBundleArchive(ctx context.Context, ownerID string, bundleID uuid.UUID) (shared.Download, error) {
	bundle, software, err := s.bundleSoftware(ownerID, bundleID)
	if err != nil {
		return shared.Download{}, err
	}

	download, err := s.archive(ctx, software, BundleArchiveName(s.cfg.ProductName, bundle.Name, s.now()))
	if err != nil {
		return shared.Download{}, err
	}
	monitoring.DownloadsTotal.WithLabelValues("bundle").Inc()
	slog.Debug("serving bundle archive", "ownerID", ownerID, "bundleID", bundleID)
	return download, nil
}

func (s *downloadService) ExportBundleScript(ctx context.Context, ownerID string, bundleID uuid.UUID, flavor shared.ScriptFlavor, urlTemplate string) (shared.Download, error) {
	if err := ctx.Err(); err != nil {
		return shared.Download{}, err
	}
	bundle, software, err := s.bundleSoftware(ownerID, bundleID)
	if err != nil {
		return shared.Download{}, err
	}

	text, err := s.scriptExporter.Render(bundle.Name, software, urlTemplate, s.now(), flavor)
	if err != nil {
		return shared.Download{}, err
	}

	monitoring.DownloadsTotal.WithLabelValues("script").Inc()
	return shared.Download{
		FileName:      BundleScriptName(bundle.Name, flavor),
		ContentType:   scriptContentType,
		ContentLength: int64(len(text)),
		Payload:       bytesPayload{data: []byte(text)},
	}, nil
}

// bundleSoftware loads an owned bundle and its software in membership order.
func (s *downloadService) bundleSoftware(ownerID string, bundleID uuid.UUID) (models.Bundle, []models.Software, error) {
	bundle, err := s.bundleService.GetBundle(ownerID, bundleID)
	if err != nil {
		return models.Bundle{}, nil, err
	}
	software := bundle.OrderedSoftware()
	if len(software) == 0 {
		return models.Bundle{}, nil, shared.NewNotFoundError("no software in bundle", nil)
	}
	return bundle, software, nil
}

func (s *downloadService) archive(ctx context.Context, software []models.Software, outputName string) (shared.Download, error) {
	entries, err := s.availableEntries(ctx, software)
	if err != nil {
		return shared.Download{}, err
	}
	if len(entries) == 0 {
		return shared.Download{}, shared.NewNotFoundError("no files available", nil)
	}

	handle, err := s.archiveBuilder.Build(ctx, entries, outputName)
	if err != nil {
		if shared.IsNotFound(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return shared.Download{}, err
		}
		return shared.Download{}, shared.NewInternalError("could not build archive", err)
	}

	return shared.Download{
		FileName:      outputName,
		ContentType:   archiveContentType,
		ContentLength: handle.Size(),
		Payload:       handle,
	}, nil
}

// availableEntries checks the blobs concurrently. Software without a blob is
// dropped, the order of the remaining entries is kept.
func (s *downloadService) availableEntries(ctx context.Context, software []models.Software) ([]shared.ArchiveEntry, error) {
	found := make([]*shared.ArchiveEntry, len(software))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.StatConcurrency)
	for i, sw := range software {
		g.Go(func() error {
			info, err := s.blobStore.Stat(gctx, sw.FileName)
			if err != nil {
				if shared.IsNotFound(err) {
					slog.Warn("skipping software without blob", "softwareID", sw.ID, "fileName", sw.FileName)
					return nil
				}
				return err
			}
			found[i] = &shared.ArchiveEntry{
				Name:         sw.FileName,
				DeclaredSize: declaredSize(info, sw),
				ModTime:      info.ModTime,
				Open: func(ctx context.Context) (io.ReadCloser, error) {
					return s.blobStore.Open(ctx, sw.FileName)
				},
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]shared.ArchiveEntry, 0, len(found))
	for _, e := range found {
		if e != nil {
			entries = append(entries, *e)
		}
	}
	return entries, nil
}

// declaredSize prefers the size of the blob over the curated catalog size.
func declaredSize(info shared.BlobInfo, sw models.Software) int64 {
	if info.Size >= 0 {
		return info.Size
	}
	if size, ok := sw.DeclaredSizeBytes(); ok {
		return size
	}
	return -1
}

func nameSlug(name string) string {
	if s := slug.Make(name); s != "" {
		return s
	}
	return "bundle"
}

// BundleArchiveName returns <product>-<slug>-<YYYY-MM-DD>.zip.
func BundleArchiveName(product, bundleName string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%s.zip", product, nameSlug(bundleName), now.Format(time.DateOnly))
}

func BundleScriptName(bundleName string, flavor shared.ScriptFlavor) string {
	return fmt.Sprintf("%s-install.%s", nameSlug(bundleName), flavor)
}
