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
	"context"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/l3montree-dev/sdm/auth"
	"github.com/l3montree-dev/sdm/config"
	"github.com/l3montree-dev/sdm/middlewares"
	"github.com/l3montree-dev/sdm/mocks"
	"github.com/l3montree-dev/sdm/shared"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakePayload struct {
	body   string
	err    error
	closed bool
}

func (p *fakePayload) Send(ctx context.Context, w io.Writer) (int64, error) {
	if p.body == "" {
		return 0, p.err
	}
	n, err := io.WriteString(w, p.body)
	if err != nil {
		return int64(n), err
	}
	return int64(n), p.err
}

func (p *fakePayload) Close() error {
	p.closed = true
	return nil
}

func newDownloadController(t *testing.T) (*DownloadController, *mocks.DownloadService) {
	downloadService := mocks.NewDownloadService(t)
	return NewDownloadController(downloadService, config.ServerConfig{APIURL: "https://sdm.example/"}), downloadService
}

func TestDownloadControllerSingleFile(t *testing.T) {
	t.Run("should send the file as attachment with content length", func(t *testing.T) {
		controller, downloadService := newDownloadController(t)
		payload := &fakePayload{body: "binary"}
		downloadService.On("GetSingleFile", mock.Anything, "owner-1", int64(5)).Return(shared.Download{
			FileName:      "VLC Setup 3.0.exe",
			ContentType:   "application/vnd.microsoft.portable-executable",
			ContentLength: 6,
			Payload:       payload,
		}, nil)

		ctx, rec := newJSONContext(http.MethodGet, "/downloads/software/5/", nil)
		ctx.SetParamNames("softwareID")
		ctx.SetParamValues("5")

		require.Nil(t, controller.SingleFile(ctx))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "binary", rec.Body.String())
		assert.Equal(t, "6", rec.Header().Get(echo.HeaderContentLength))
		assert.Equal(t, "application/vnd.microsoft.portable-executable", rec.Header().Get(echo.HeaderContentType))

		disposition, params, err := mime.ParseMediaType(rec.Header().Get(echo.HeaderContentDisposition))
		require.Nil(t, err)
		assert.Equal(t, "attachment", disposition)
		assert.Equal(t, "VLC Setup 3.0.exe", params["filename"])
		assert.True(t, payload.closed)
	})

	t.Run("should reject a malformed software id", func(t *testing.T) {
		controller, _ := newDownloadController(t)

		ctx, _ := newJSONContext(http.MethodGet, "/downloads/software/abc/", nil)
		ctx.SetParamNames("softwareID")
		ctx.SetParamValues("abc")

		assertHTTPStatus(t, controller.SingleFile(ctx), http.StatusBadRequest)
	})

	t.Run("should answer 404 if the installer is missing", func(t *testing.T) {
		controller, downloadService := newDownloadController(t)
		downloadService.On("GetSingleFile", mock.Anything, "owner-1", int64(5)).Return(shared.Download{}, shared.NewNotFoundError("no files available", nil))

		ctx, _ := newJSONContext(http.MethodGet, "/downloads/software/5/", nil)
		ctx.SetParamNames("softwareID")
		ctx.SetParamValues("5")

		assertHTTPStatus(t, controller.SingleFile(ctx), http.StatusNotFound)
	})
}

func TestDownloadControllerArchive(t *testing.T) {
	t.Run("should stream an archive without content length", func(t *testing.T) {
		controller, downloadService := newDownloadController(t)
		payload := &fakePayload{body: "PK..."}
		downloadService.On("GetFilesAsArchive", mock.Anything, "owner-1", []int64{3, 1}).Return(shared.Download{
			FileName:      "SDM.zip",
			ContentType:   "application/zip",
			ContentLength: -1,
			Payload:       payload,
		}, nil)

		ctx, rec := newJSONContext(http.MethodPost, "/downloads/archive/", map[string]any{"softwareIds": []int64{3, 1}})

		require.Nil(t, controller.Archive(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get(echo.HeaderContentLength))
		assert.Equal(t, "application/zip", rec.Header().Get(echo.HeaderContentType))
		assert.True(t, payload.closed)
	})

	t.Run("should reject an empty selection", func(t *testing.T) {
		controller, _ := newDownloadController(t)

		ctx, _ := newJSONContext(http.MethodPost, "/downloads/archive/", map[string]any{"softwareIds": []int64{}})

		assertHTTPStatus(t, controller.Archive(ctx), http.StatusBadRequest)
	})

	t.Run("should answer 404 if the payload fails before the first byte", func(t *testing.T) {
		controller, downloadService := newDownloadController(t)
		payload := &fakePayload{err: shared.NewNotFoundError("no files available", nil)}
		downloadService.On("GetFilesAsArchive", mock.Anything, "owner-1", []int64{1}).Return(shared.Download{
			FileName:      "SDM.zip",
			ContentType:   "application/zip",
			ContentLength: -1,
			Payload:       payload,
		}, nil)

		ctx, rec := newJSONContext(http.MethodPost, "/downloads/archive/", map[string]any{"softwareIds": []int64{1}})

		assertHTTPStatus(t, controller.Archive(ctx), http.StatusNotFound)
		assert.False(t, ctx.Response().Committed)
		assert.Empty(t, rec.Body.String())
		assert.Empty(t, rec.Header().Get(echo.HeaderContentType))
		assert.Empty(t, rec.Header().Get(echo.HeaderContentDisposition))
		assert.True(t, payload.closed)
	})

	t.Run("should render a payload failure before the first byte as json", func(t *testing.T) {
		controller, downloadService := newDownloadController(t)
		payload := &fakePayload{err: shared.NewNotFoundError("no files available", nil)}
		downloadService.On("GetFilesAsArchive", mock.Anything, "owner-1", []int64{1}).Return(shared.Download{
			FileName:      "SDM.zip",
			ContentType:   "application/zip",
			ContentLength: -1,
			Payload:       payload,
		}, nil)

		e := middlewares.Server(config.ServerConfig{})
		e.POST("/downloads/archive/", controller.Archive, func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(ctx echo.Context) error {
				shared.SetSession(ctx, auth.NewSession("owner-1"))
				return next(ctx)
			}
		})

		req := httptest.NewRequest(http.MethodPost, "/downloads/archive/", strings.NewReader(`{"softwareIds":[1]}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/json")
		assert.Empty(t, rec.Header().Get(echo.HeaderContentDisposition))
		assert.JSONEq(t, `{"message":"no files available"}`, rec.Body.String())
	})

	t.Run("should abort the connection if the payload fails mid stream", func(t *testing.T) {
		controller, downloadService := newDownloadController(t)
		payload := &fakePayload{body: "PK", err: shared.NewIOError("could not read installer", io.ErrUnexpectedEOF)}
		downloadService.On("GetFilesAsArchive", mock.Anything, "owner-1", []int64{1}).Return(shared.Download{
			FileName:      "SDM.zip",
			ContentType:   "application/zip",
			ContentLength: -1,
			Payload:       payload,
		}, nil)

		ctx, _ := newJSONContext(http.MethodPost, "/downloads/archive/", map[string]any{"softwareIds": []int64{1}})

		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			_ = controller.Archive(ctx)
		})
		assert.True(t, payload.closed)
	})

	t.Run("should stay silent if the client went away", func(t *testing.T) {
		controller, downloadService := newDownloadController(t)
		payload := &fakePayload{body: "PK", err: context.Canceled}
		downloadService.On("GetFilesAsArchive", mock.Anything, "owner-1", []int64{1}).Return(shared.Download{
			FileName:      "SDM.zip",
			ContentType:   "application/zip",
			ContentLength: -1,
			Payload:       payload,
		}, nil)

		ctx, _ := newJSONContext(http.MethodPost, "/downloads/archive/", map[string]any{"softwareIds": []int64{1}})
		cancelCtx, cancel := context.WithCancel(ctx.Request().Context())
		cancel()
		ctx.SetRequest(ctx.Request().WithContext(cancelCtx))

		assert.Nil(t, controller.Archive(ctx))
	})
}

func TestDownloadControllerBundleScript(t *testing.T) {
	t.Run("should pass the flavor and the url template to the service", func(t *testing.T) {
		controller, downloadService := newDownloadController(t)
		bundleID := uuid.New()
		script := "#!/bin/sh\n"
		downloadService.On("ExportBundleScript", mock.Anything, "owner-1", bundleID, shared.ScriptFlavorShell, "https://sdm.example/api/v1/downloads/software/{id}/").Return(shared.Download{
			FileName:      "dev-setup-install.sh",
			ContentType:   "text/plain; charset=UTF-8",
			ContentLength: int64(len(script)),
			Payload:       &fakePayload{body: script},
		}, nil)

		ctx, rec := newJSONContext(http.MethodGet, "/bundles/"+bundleID.String()+"/script/?format=sh", nil)
		ctx.SetParamNames("bundleID")
		ctx.SetParamValues(bundleID.String())

		require.Nil(t, controller.BundleScript(ctx))
		assert.Equal(t, script, rec.Body.String())
		assert.Equal(t, strconv.Itoa(len(script)), rec.Header().Get(echo.HeaderContentLength))
	})

	t.Run("should reject unknown formats", func(t *testing.T) {
		controller, _ := newDownloadController(t)
		bundleID := uuid.New()

		ctx, _ := newJSONContext(http.MethodGet, "/bundles/"+bundleID.String()+"/script/?format=bat", nil)
		ctx.SetParamNames("bundleID")
		ctx.SetParamValues(bundleID.String())

		assertHTTPStatus(t, controller.BundleScript(ctx), http.StatusBadRequest)
	})
}

func TestDownloadControllerBundleArchive(t *testing.T) {
	controller, downloadService := newDownloadController(t)
	bundleID := uuid.New()
	downloadService.On("DownloadBundleArchive", mock.Anything, "owner-1", bundleID).Return(shared.Download{}, shared.NewAuthorizationError("bundle belongs to another owner"))

	ctx, _ := newJSONContext(http.MethodGet, "/bundles/", nil)
	ctx.SetParamNames("bundleID")
	ctx.SetParamValues(bundleID.String())

	assertHTTPStatus(t, controller.BundleArchive(ctx), http.StatusForbidden)
}
