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
)

// BlobInfo describes a stored installer. Size is -1 if the store does not know it.
type BlobInfo struct {
	Name     string
	Size     int64
	ModTime  time.Time
	MimeType string
}

// ArchiveEntry is one file of an archive. DeclaredSize is -1 if unknown.
type ArchiveEntry struct {
	Name         string
	DeclaredSize int64
	ModTime      time.Time
	Open         func(ctx context.Context) (io.ReadCloser, error)
}

type ArchiveStrategy string

const (
	// ArchiveStrategyStreamed writes the archive directly to the client.
	ArchiveStrategyStreamed ArchiveStrategy = "streamed"
	// ArchiveStrategyBuffered writes the archive to a scratch file first.
	ArchiveStrategyBuffered ArchiveStrategy = "buffered"
)

// Payload is the body of a download. Send writes it to w exactly once.
// Close releases every resource held by the payload and is safe to call after Send.
type Payload interface {
	Send(ctx context.Context, w io.Writer) (int64, error)
	Close() error
}

type ArchiveHandle interface {
	Payload
	Strategy() ArchiveStrategy
	// Size is the final archive size or -1 if it is only known after sending.
	Size() int64
}

// Download is a named byte stream ready to be sent to a client.
type Download struct {
	FileName      string
	ContentType   string
	ContentLength int64
	Payload       Payload
}

type ScriptFlavor string

const (
	ScriptFlavorPowerShell ScriptFlavor = "ps1"
	ScriptFlavorShell      ScriptFlavor = "sh"
)

func ParseScriptFlavor(s string) (ScriptFlavor, error) {
	switch ScriptFlavor(s) {
	case "", ScriptFlavorPowerShell:
		return ScriptFlavorPowerShell, nil
	case ScriptFlavorShell:
		return ScriptFlavorShell, nil
	}
	return "", NewValidationError("format", "must be one of ps1, sh")
}
