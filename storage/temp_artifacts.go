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

package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/l3montree-dev/sdm/config"
	"github.com/l3montree-dev/sdm/monitoring"
	"github.com/l3montree-dev/sdm/shared"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/spf13/afero"
)

// TempArtifactManager owns the scratch directory shared by all requests.
// Requests never share a file; isolation comes from unique names.
type TempArtifactManager struct {
	fs        afero.Fs
	dir       string
	now       func() time.Time
	freeSpace func(dir string) (uint64, error)

	sweeping atomic.Bool
}

func NewTempArtifactManager(fsys afero.Fs, dir string) *TempArtifactManager {
	return &TempArtifactManager{
		fs:  fsys,
		dir: dir,
		now: time.Now,
	}
}

// NewOsTempArtifactManager uses the real filesystem and checks the free disk space before buffering archives.
func NewOsTempArtifactManager(cfg config.ArchiveConfig) *TempArtifactManager {
	m := NewTempArtifactManager(afero.NewOsFs(), cfg.ScratchDir)
	m.freeSpace = diskFree
	return m
}

func diskFree(dir string) (uint64, error) {
	usage, err := disk.Usage(dir)
	if err != nil {
		return 0, err
	}
	return usage.Free, nil
}

func (m *TempArtifactManager) Dir() string {
	return m.dir
}

func (m *TempArtifactManager) ensureDir() error {
	if err := m.fs.MkdirAll(m.dir, 0o750); err != nil {
		return shared.NewIOError("could not create scratch directory", err)
	}
	return nil
}

// Allocate creates a new scratch file named prefix + timestamp + random part.
// The file is opened for writing and created exclusively.
func (m *TempArtifactManager) Allocate(prefix string) (afero.File, error) {
	if err := m.ensureDir(); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%s%s-%s.zip", prefix, m.now().UTC().Format("20060102T150405.000000000"), uuid.NewString())
	f, err := m.fs.OpenFile(filepath.Join(m.dir, name), os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, shared.NewIOError("could not allocate scratch file", err)
	}
	return f, nil
}

// Sweep removes every regular file in the scratch directory which was last
// modified more than maxAge ago. Failing deletions are logged and skipped.
func (m *TempArtifactManager) Sweep(maxAge time.Duration) int {
	entries, err := afero.ReadDir(m.fs, m.dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("could not read scratch directory", "dir", m.dir, "err", err)
		}
		return 0
	}

	cutoff := m.now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if !entry.Mode().IsRegular() || !entry.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(m.dir, entry.Name())
		if err := m.fs.Remove(path); err != nil {
			slog.Warn("could not remove expired scratch file", "path", path, "err", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		monitoring.TempArtifactsSweptTotal.Add(float64(removed))
		slog.Info("removed expired scratch files", "count", removed, "dir", m.dir)
	}
	return removed
}

func (m *TempArtifactManager) SweepAsync(maxAge time.Duration) {
	if !m.sweeping.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer m.sweeping.Store(false)
		m.Sweep(maxAge)
	}()
}

func (m *TempArtifactManager) EnsureFreeSpace(required int64) error {
	if m.freeSpace == nil || required <= 0 {
		return nil
	}
	if err := m.ensureDir(); err != nil {
		return err
	}
	free, err := m.freeSpace(m.dir)
	if err != nil {
		// the check is advisory, the write itself still fails if the disk is full
		slog.Warn("could not determine free scratch space", "dir", m.dir, "err", err)
		return nil
	}
	if free < uint64(required) {
		return shared.NewIOError("insufficient scratch space", fmt.Errorf("need %s, have %s", humanize.IBytes(uint64(required)), humanize.IBytes(free)))
	}
	return nil
}

// ReleaseAfterSend removes a scratch file once it was delivered (or delivery failed).
func (m *TempArtifactManager) ReleaseAfterSend(path string) {
	if err := m.fs.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not release scratch file, the sweeper will pick it up", "path", path, "err", err)
	}
}
