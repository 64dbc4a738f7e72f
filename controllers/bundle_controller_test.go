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
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/l3montree-dev/sdm/auth"
	"github.com/l3montree-dev/sdm/database/models"
	"github.com/l3montree-dev/sdm/dtos"
	"github.com/l3montree-dev/sdm/mocks"
	"github.com/l3montree-dev/sdm/shared"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newJSONContext(method, target string, body any) (echo.Context, *httptest.ResponseRecorder) {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)
	shared.SetSession(ctx, auth.NewSession("owner-1"))
	return ctx, rec
}

func assertHTTPStatus(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, code, he.Code)
}

func bundleFixture() models.Bundle {
	return models.Bundle{
		Model:   models.Model{ID: uuid.New()},
		OwnerID: "owner-1",
		Name:    "Dev Setup",
		Items: []models.BundleItem{
			{SoftwareID: 2, SortOrder: 2, Software: models.Software{ID: 2, Name: "VLC"}},
			{SoftwareID: 7, SortOrder: 1, Software: models.Software{ID: 7, Name: "Firefox"}},
		},
	}
}

func TestBundleControllerCreate(t *testing.T) {
	t.Run("should create the bundle for the session owner", func(t *testing.T) {
		bundleService := mocks.NewBundleService(t)
		bundle := bundleFixture()
		bundleService.On("CreateBundle", "owner-1", dtos.BundleCreateRequest{Name: "Dev Setup", SoftwareIDs: []int64{7, 2}}).Return(bundle, nil)

		ctx, rec := newJSONContext(http.MethodPost, "/bundles/", map[string]any{"name": "Dev Setup", "softwareIds": []int64{7, 2}})

		err := NewBundleController(bundleService).Create(ctx)
		require.Nil(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp dtos.BundleDetailsDTO
		require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, []int64{7, 2}, resp.SoftwareIDs)
		assert.Equal(t, "Firefox", resp.Software[0].Name)
	})

	t.Run("should reject an invalid request without calling the service", func(t *testing.T) {
		bundleService := mocks.NewBundleService(t)

		ctx, _ := newJSONContext(http.MethodPost, "/bundles/", map[string]any{"name": "x", "softwareIds": []int64{}})

		err := NewBundleController(bundleService).Create(ctx)
		assertHTTPStatus(t, err, http.StatusBadRequest)
	})

	t.Run("should reject duplicate software ids", func(t *testing.T) {
		bundleService := mocks.NewBundleService(t)

		ctx, _ := newJSONContext(http.MethodPost, "/bundles/", map[string]any{"name": "x", "softwareIds": []int64{1, 1}})

		err := NewBundleController(bundleService).Create(ctx)
		assertHTTPStatus(t, err, http.StatusBadRequest)
	})

	t.Run("should report unknown software as bad request", func(t *testing.T) {
		bundleService := mocks.NewBundleService(t)
		bundleService.On("CreateBundle", "owner-1", mock.Anything).Return(models.Bundle{}, shared.NewValidationError("softwareIds", "unknown software: 4711"))

		ctx, _ := newJSONContext(http.MethodPost, "/bundles/", map[string]any{"name": "x", "softwareIds": []int64{4711}})

		err := NewBundleController(bundleService).Create(ctx)
		assertHTTPStatus(t, err, http.StatusBadRequest)
	})
}

func TestBundleControllerRead(t *testing.T) {
	t.Run("should reject a malformed bundle id", func(t *testing.T) {
		ctx, _ := newJSONContext(http.MethodGet, "/bundles/nope/", nil)
		ctx.SetParamNames("bundleID")
		ctx.SetParamValues("nope")

		err := NewBundleController(mocks.NewBundleService(t)).Read(ctx)
		assertHTTPStatus(t, err, http.StatusBadRequest)
	})

	t.Run("should map the error taxonomy to status codes", func(t *testing.T) {
		cases := []struct {
			err  error
			code int
		}{
			{shared.NewNotFoundError("bundle not found", nil), http.StatusNotFound},
			{shared.NewAuthorizationError("bundle belongs to another owner"), http.StatusForbidden},
			{shared.NewStorageError("could not read bundle", errors.New("connection reset")), http.StatusInternalServerError},
		}

		for _, c := range cases {
			bundleID := uuid.New()
			bundleService := mocks.NewBundleService(t)
			bundleService.On("GetBundle", "owner-1", bundleID).Return(models.Bundle{}, c.err)

			ctx, _ := newJSONContext(http.MethodGet, "/bundles/", nil)
			ctx.SetParamNames("bundleID")
			ctx.SetParamValues(bundleID.String())

			err := NewBundleController(bundleService).Read(ctx)
			assertHTTPStatus(t, err, c.code)
		}
	})
}

func TestBundleControllerUpdate(t *testing.T) {
	t.Run("should pass only the set fields to the service", func(t *testing.T) {
		bundle := bundleFixture()
		bundleService := mocks.NewBundleService(t)
		bundleService.On("UpdateBundle", "owner-1", bundle.ID, mock.MatchedBy(func(req dtos.BundlePatchRequest) bool {
			return req.Name == nil && req.SoftwareIDs == nil && req.IsDefault != nil && *req.IsDefault
		})).Return(bundle, nil)

		ctx, rec := newJSONContext(http.MethodPatch, "/bundles/", map[string]any{"isDefault": true})
		ctx.SetParamNames("bundleID")
		ctx.SetParamValues(bundle.ID.String())

		err := NewBundleController(bundleService).Update(ctx)
		require.Nil(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestBundleControllerDelete(t *testing.T) {
	bundleID := uuid.New()
	bundleService := mocks.NewBundleService(t)
	bundleService.On("DeleteBundle", "owner-1", bundleID).Return(nil)

	ctx, rec := newJSONContext(http.MethodDelete, "/bundles/", nil)
	ctx.SetParamNames("bundleID")
	ctx.SetParamValues(bundleID.String())

	require.Nil(t, NewBundleController(bundleService).Delete(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSoftwareControllerList(t *testing.T) {
	softwareService := mocks.NewSoftwareService(t)
	softwareService.On("List").Return([]models.Software{{ID: 1, Name: "7-Zip"}, {ID: 2, Name: "VLC"}}, nil)

	ctx, rec := newJSONContext(http.MethodGet, "/software/", nil)

	require.Nil(t, NewSoftwareController(softwareService).List(ctx))

	var resp []dtos.SoftwareDTO
	require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
	assert.Equal(t, "7-Zip", resp[0].Name)
}
