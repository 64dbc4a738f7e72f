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
	"log/slog"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/l3montree-dev/sdm/monitoring"
	"github.com/l3montree-dev/sdm/shared"
	"github.com/l3montree-dev/sdm/utils"
)

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

type flusher interface {
	Flush()
}

func newZipWriter(w io.Writer) *zip.Writer {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})
	return zw
}

// writeEntries adds every entry to zw in order. Entries which cannot be opened
// are skipped and returned. afterEntry runs after each written entry.
func writeEntries(
	ctx context.Context,
	zw *zip.Writer,
	entries []shared.ArchiveEntry,
	methodFor func(shared.ArchiveEntry) uint16,
	afterEntry func() error,
) (int, []string, error) {
	written := 0
	var skipped []string

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return written, skipped, err
		}

		rc, err := e.Open(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return written, skipped, ctxErr
			}
			slog.Warn("skipping archive entry which could not be opened", "name", e.Name, "err", err)
			monitoring.ArchiveEntriesSkippedTotal.Inc()
			skipped = append(skipped, e.Name)
			continue
		}

		err = writeEntry(ctx, zw, e, methodFor(e), rc)
		rc.Close()
		if err != nil {
			return written, skipped, err
		}
		written++

		if afterEntry != nil {
			if err := afterEntry(); err != nil {
				return written, skipped, shared.NewIOError("could not flush archive", err)
			}
		}
	}

	return written, skipped, nil
}

func writeEntry(ctx context.Context, zw *zip.Writer, e shared.ArchiveEntry, method uint16, r io.Reader) error {
	header := &zip.FileHeader{
		Name:     e.Name,
		Method:   method,
		Modified: e.ModTime,
	}
	header.SetMode(0o644)

	w, err := zw.CreateHeader(header)
	if err != nil {
		return shared.NewIOError("could not add archive entry", err)
	}
	if _, err := io.Copy(w, utils.ContextReader(ctx, r)); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return shared.NewIOError("could not write archive entry "+e.Name, err)
	}
	return nil
}

func finish(zw *zip.Writer, skipped []string) error {
	if comment := skippedComment(skipped); comment != "" {
		if err := zw.SetComment(comment); err != nil {
			return shared.NewIOError("could not set archive comment", err)
		}
	}
	if err := zw.Close(); err != nil {
		return shared.NewIOError("could not finish archive", err)
	}
	return nil
}
