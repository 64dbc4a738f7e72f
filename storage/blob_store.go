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
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/l3montree-dev/sdm/config"
	"github.com/l3montree-dev/sdm/shared"
	"github.com/spf13/afero"
)

const defaultMimeType = "application/octet-stream"

// FileBlobStore serves installers from a flat directory. File names are the
// logical ids of the catalog and must not contain path separators.
type FileBlobStore struct {
	fs        afero.Fs
	mimeCache *lru.Cache[string, string]
}

// NewFileBlobStore expects fs to be rooted at the blob directory.
func NewFileBlobStore(fsys afero.Fs) *FileBlobStore {
	cache, err := lru.New[string, string](1024)
	if err != nil {
		// only fails for a non positive size
		panic(err)
	}
	return &FileBlobStore{
		fs:        fsys,
		mimeCache: cache,
	}
}

func NewOsBlobStore(cfg config.ServerConfig) *FileBlobStore {
	slog.Info("serving blobs from directory", "root", cfg.BlobRoot)
	return NewFileBlobStore(afero.NewBasePathFs(afero.NewOsFs(), cfg.BlobRoot))
}

func cleanName(fileName string) (string, error) {
	if fileName == "" || fileName == "." || fileName == ".." || strings.ContainsAny(fileName, `/\`) || filepath.Base(fileName) != fileName {
		return "", shared.NewNotFoundError("file not found", fmt.Errorf("invalid blob name %q", fileName))
	}
	return fileName, nil
}

func (s *FileBlobStore) stat(ctx context.Context, fileName string) (string, os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	name, err := cleanName(fileName)
	if err != nil {
		return "", nil, err
	}
	fi, err := s.fs.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, shared.NewNotFoundError("file not found", err)
		}
		return "", nil, shared.NewIOError("could not stat blob", err)
	}
	if !fi.Mode().IsRegular() {
		return "", nil, shared.NewNotFoundError("file not found", fmt.Errorf("%s is not a regular file", name))
	}
	return name, fi, nil
}

func (s *FileBlobStore) Stat(ctx context.Context, fileName string) (shared.BlobInfo, error) {
	name, fi, err := s.stat(ctx, fileName)
	if err != nil {
		return shared.BlobInfo{}, err
	}
	return shared.BlobInfo{
		Name:     name,
		Size:     fi.Size(),
		ModTime:  fi.ModTime(),
		MimeType: s.mimeType(name, fi),
	}, nil
}

func (s *FileBlobStore) Exists(ctx context.Context, fileName string) (bool, error) {
	_, _, err := s.stat(ctx, fileName)
	if err == nil {
		return true, nil
	}
	if shared.IsNotFound(err) {
		return false, nil
	}
	return false, err
}

func (s *FileBlobStore) Open(ctx context.Context, fileName string) (io.ReadCloser, error) {
	name, _, err := s.stat(ctx, fileName)
	if err != nil {
		return nil, err
	}
	f, err := s.fs.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, shared.NewNotFoundError("file not found", err)
		}
		return nil, shared.NewIOError("could not open blob", err)
	}
	return f, nil
}

// mimeType sniffs the content and falls back to the extension. Results are
// cached per name, size and modification time.
func (s *FileBlobStore) mimeType(name string, fi os.FileInfo) string {
	key := fmt.Sprintf("%s|%d|%d", name, fi.Size(), fi.ModTime().UnixNano())
	if v, ok := s.mimeCache.Get(key); ok {
		return v
	}

	detected := defaultMimeType
	f, err := s.fs.Open(name)
	if err != nil {
		slog.Warn("could not open blob for mime detection", "name", name, "err", err)
	} else {
		mt, err := mimetype.DetectReader(f)
		f.Close()
		if err == nil {
			detected = mt.String()
		}
	}

	if detected == defaultMimeType {
		if byExt := mime.TypeByExtension(filepath.Ext(name)); byExt != "" {
			detected = byExt
		}
	}

	s.mimeCache.Add(key, detected)
	return detected
}
