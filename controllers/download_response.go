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

package controllers

import (
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/l3montree-dev/sdm/shared"
	"github.com/labstack/echo/v4"
)

func contentDisposition(fileName string) string {
	// FormatMediaType switches to the RFC 2231 encoding for non ascii names
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": fileName}); v != "" {
		return v
	}
	return "attachment"
}

// sendDownload streams the payload as attachment. The status line and the
// headers are committed with the first byte of the payload, so a payload
// which fails before writing anything still results in a regular error response.
func sendDownload(ctx shared.Context, download shared.Download) error {
	defer download.Payload.Close()

	header := ctx.Response().Header()
	header.Set(echo.HeaderContentType, download.ContentType)
	header.Set(echo.HeaderContentDisposition, contentDisposition(download.FileName))
	if download.ContentLength >= 0 {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(download.ContentLength, 10))
	}

	written, err := download.Payload.Send(ctx.Request().Context(), ctx.Response())
	if err == nil {
		if !ctx.Response().Committed {
			// zero byte payloads never call Write
			ctx.Response().WriteHeader(http.StatusOK)
		}
		return nil
	}

	if !ctx.Response().Committed {
		header.Del(echo.HeaderContentType)
		header.Del(echo.HeaderContentDisposition)
		header.Del(echo.HeaderContentLength)
		return toHTTPError(err)
	}

	if ctx.Request().Context().Err() != nil {
		slog.Info("client went away during download", "fileName", download.FileName, "written", written)
		return nil
	}

	// a truncated body must never look like a complete file
	slog.Error("download failed after the response was committed", "fileName", download.FileName, "written", written, "err", err)
	panic(http.ErrAbortHandler)
}
