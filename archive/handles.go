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
	"io"
	"sync"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/l3montree-dev/sdm/monitoring"
	"github.com/l3montree-dev/sdm/shared"
	"github.com/l3montree-dev/sdm/utils"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

var errAlreadySent = errors.New("archive was already sent")

// streamedHandle writes the archive while sending. Nothing is buffered on disk.
type streamedHandle struct {
	entries []shared.ArchiveEntry
	started time.Time

	mu   sync.Mutex
	sent bool
}

func (h *streamedHandle) Strategy() shared.ArchiveStrategy { return shared.ArchiveStrategyStreamed }
func (h *streamedHandle) Size() int64                      { return -1 }
func (h *streamedHandle) Close() error                     { return nil }

func (h *streamedHandle) Send(ctx context.Context, w io.Writer) (int64, error) {
	h.mu.Lock()
	if h.sent {
		h.mu.Unlock()
		return 0, errAlreadySent
	}
	h.sent = true
	h.mu.Unlock()

	out := &countingWriter{w: w}
	zw := newZipWriter(out)

	afterEntry := func() error {
		if err := zw.Flush(); err != nil {
			return err
		}
		if f, ok := w.(flusher); ok {
			f.Flush()
		}
		return nil
	}

	written, skipped, err := writeEntries(ctx, zw, h.entries, func(shared.ArchiveEntry) uint16 {
		return zip.Deflate
	}, afterEntry)
	if err != nil {
		return out.n, err
	}
	if written == 0 {
		// nothing was written to w yet, the caller can still answer with a proper error
		return out.n, shared.NewNotFoundError("no files available", nil)
	}
	if err := finish(zw, skipped); err != nil {
		return out.n, err
	}

	monitoring.ArchiveBuildDuration.WithLabelValues(string(shared.ArchiveStrategyStreamed)).Observe(time.Since(h.started).Seconds())
	return out.n, nil
}

// bufferedHandle serves a finished scratch file and removes it afterwards.
type bufferedHandle struct {
	file    afero.File
	path    string
	size    int64
	release func(path string)
	started time.Time

	mu        sync.Mutex
	sent      bool
	closeOnce sync.Once
	closeErr  error
}

func (h *bufferedHandle) Strategy() shared.ArchiveStrategy { return shared.ArchiveStrategyBuffered }
func (h *bufferedHandle) Size() int64                      { return h.size }

func (h *bufferedHandle) Send(ctx context.Context, w io.Writer) (int64, error) {
	h.mu.Lock()
	if h.sent {
		h.mu.Unlock()
		return 0, errAlreadySent
	}
	h.sent = true
	h.mu.Unlock()

	// the scratch file is released no matter how sending ends
	defer h.Close()

	if _, err := h.file.Seek(0, io.SeekStart); err != nil {
		return 0, shared.NewIOError("could not rewind scratch file", err)
	}
	n, err := io.Copy(w, utils.ContextReader(ctx, h.file))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return n, ctxErr
		}
		return n, shared.NewIOError("could not send archive", err)
	}

	monitoring.ArchiveBuildDuration.WithLabelValues(string(shared.ArchiveStrategyBuffered)).Observe(time.Since(h.started).Seconds())
	return n, nil
}

func (h *bufferedHandle) Close() error {
	h.closeOnce.Do(func() {
		h.closeErr = h.file.Close()
		h.release(h.path)
	})
	return h.closeErr
}
