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

package archive

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/klauspost/compress/zip"
	"github.com/l3montree-dev/sdm/config"
	"github.com/l3montree-dev/sdm/monitoring"
	"github.com/l3montree-dev/sdm/shared"
)

// Builder assembles zip archives from archive entries.
type Builder struct {
	cfg    config.ArchiveConfig
	temp   shared.TempArtifactManager
	policy Policy
}

var _ shared.ArchiveBuilder = (*Builder)(nil)

func NewBuilder(cfg config.ArchiveConfig, temp shared.TempArtifactManager) *Builder {
	return &Builder{
		cfg:    cfg,
		temp:   temp,
		policy: DefaultPolicy,
	}
}

// WithPolicy returns a copy of the builder which selects strategies using policy.
func (b *Builder) WithPolicy(policy Policy) *Builder {
	cp := *b
	cp.policy = policy
	return &cp
}

// Build selects a strategy and prepares the archive. A buffered archive is
// complete when Build returns, a streamed one is written during Send.
func (b *Builder) Build(ctx context.Context, entries []shared.ArchiveEntry, outputName string) (shared.ArchiveHandle, error) {
	if len(entries) == 0 {
		return nil, shared.NewNotFoundError("no files available", nil)
	}

	// opportunistic cleanup of scratch files left behind by earlier requests
	b.temp.SweepAsync(b.cfg.TempRetention)

	entries = UniqueEntryNames(entries)
	strategy := b.policy(entries, b.cfg)
	monitoring.ArchiveBuildsTotal.WithLabelValues(string(strategy)).Inc()

	slog.Debug("building archive", "name", outputName, "entries", len(entries), "strategy", strategy, "estimatedSize", estimatedSize(entries))

	switch strategy {
	case shared.ArchiveStrategyStreamed:
		return &streamedHandle{
			entries: entries,
			started: time.Now(),
		}, nil
	case shared.ArchiveStrategyBuffered:
		return b.buildBuffered(ctx, entries, outputName)
	}
	return nil, shared.NewInternalError("unknown archive strategy "+string(strategy), nil)
}

func (b *Builder) methodFor(e shared.ArchiveEntry) uint16 {
	// installers are mostly compressed already, deflating large ones only costs time
	if e.DeclaredSize >= b.cfg.LargeEntryThresholdBytes {
		return zip.Store
	}
	return zip.Deflate
}

func scratchPrefix(outputName string) string {
	base := slug.Make(strings.TrimSuffix(outputName, filepath.Ext(outputName)))
	if base == "" {
		base = "archive"
	}
	return base + "-"
}

func (b *Builder) buildBuffered(ctx context.Context, entries []shared.ArchiveEntry, outputName string) (shared.ArchiveHandle, error) {
	started := time.Now()

	if err := b.temp.EnsureFreeSpace(estimatedSize(entries)); err != nil {
		return nil, err
	}

	f, err := b.temp.Allocate(scratchPrefix(outputName))
	if err != nil {
		return nil, err
	}
	path := f.Name()
	discard := func() {
		f.Close()
		b.temp.ReleaseAfterSend(path)
	}

	zw := newZipWriter(f)
	written, skipped, err := writeEntries(ctx, zw, entries, b.methodFor, nil)
	if err != nil {
		discard()
		return nil, err
	}
	if written == 0 {
		discard()
		return nil, shared.NewNotFoundError("no files available", nil)
	}
	if err := finish(zw, skipped); err != nil {
		discard()
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		discard()
		return nil, shared.NewIOError("could not stat scratch file", err)
	}

	return &bufferedHandle{
		file:    f,
		path:    path,
		size:    fi.Size(),
		release: b.temp.ReleaseAfterSend,
		started: started,
	}, nil
}
