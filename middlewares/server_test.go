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

package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/l3montree-dev/sdm/config"
	"github.com/l3montree-dev/sdm/mocks"
	"github.com/l3montree-dev/sdm/shared"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandler(t *testing.T) {
	t.Run("should strip attachment headers from error responses", func(t *testing.T) {
		e := Server(config.ServerConfig{})
		e.GET("/download/", func(ctx echo.Context) error {
			ctx.Response().Header().Set(echo.HeaderContentType, "application/zip")
			ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="a.zip"`)
			ctx.Response().Header().Set(echo.HeaderContentLength, "42")
			return echo.NewHTTPError(http.StatusNotFound, "no files available")
		})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download/", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Header().Get(echo.HeaderContentDisposition))
		assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/json")
		assert.JSONEq(t, `{"message":"no files available"}`, rec.Body.String())
	})

	t.Run("should pass map messages through", func(t *testing.T) {
		e := Server(config.ServerConfig{})
		e.POST("/bundles/", func(ctx echo.Context) error {
			return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"message": "invalid", "errors": map[string]string{"name": "required"}})
		})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bundles/", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"message":"invalid","errors":{"name":"required"}}`, rec.Body.String())
	})

	t.Run("should answer unknown errors with 500", func(t *testing.T) {
		e := Server(config.ServerConfig{})
		e.GET("/boom/", func(ctx echo.Context) error {
			return errors.New("database exploded")
		})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "database exploded")
	})

	t.Run("should leave committed responses alone", func(t *testing.T) {
		e := Server(config.ServerConfig{})
		e.GET("/partial/", func(ctx echo.Context) error {
			ctx.Response().WriteHeader(http.StatusOK)
			_, _ = ctx.Response().Write([]byte("PK"))
			return errors.New("reader failed")
		})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/partial/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "PK", rec.Body.String())
	})
}

func TestRecoverMiddleware(t *testing.T) {
	t.Run("should turn panics into 500", func(t *testing.T) {
		e := Server(config.ServerConfig{})
		e.GET("/panic/", func(ctx echo.Context) error {
			panic("unexpected")
		})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("should re-panic http.ErrAbortHandler", func(t *testing.T) {
		e := Server(config.ServerConfig{})
		e.GET("/abort/", func(ctx echo.Context) error {
			panic(http.ErrAbortHandler)
		})

		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/abort/", nil))
		})
	})
}

func TestDownloadRateLimiter(t *testing.T) {
	e := Server(config.ServerConfig{DownloadRateLimit: 1})
	e.POST("/archive/", func(ctx echo.Context) error {
		return ctx.NoContent(http.StatusOK)
	}, DownloadRateLimiter(config.ServerConfig{DownloadRateLimit: 1}))

	codes := make([]int, 0, 3)
	for range 3 {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/archive/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	// burst of two, the third request within the same second is denied
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestDownloadBurst(t *testing.T) {
	assert.Equal(t, 2, downloadBurst(0.5))
	assert.Equal(t, 2, downloadBurst(1))
	assert.Equal(t, 6, downloadBurst(2.5))
	assert.Equal(t, 1, downloadBurst(0))
}

func TestDownloadRateLimiterFractionalRate(t *testing.T) {
	e := Server(config.ServerConfig{})
	e.POST("/archive/", func(ctx echo.Context) error {
		return ctx.NoContent(http.StatusOK)
	}, DownloadRateLimiter(config.ServerConfig{DownloadRateLimit: 0.5}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/archive/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDownloadRateLimiterPerUser(t *testing.T) {
	limiter := DownloadRateLimiter(config.ServerConfig{DownloadRateLimit: 1})
	handler := limiter(func(ctx echo.Context) error {
		return ctx.NoContent(http.StatusOK)
	})

	request := func(session *mocks.AuthSession) error {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/archive/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		ctx := e.NewContext(req, httptest.NewRecorder())
		shared.SetSession(ctx, session)
		return handler(ctx)
	}

	alice := mocks.NewAuthSession(t)
	alice.On("GetUserID").Return("alice")
	bob := mocks.NewAuthSession(t)
	bob.On("GetUserID").Return("bob")

	assert.Nil(t, request(alice))
	assert.Nil(t, request(alice))
	err := request(alice)
	var he *echo.HTTPError
	if assert.ErrorAs(t, err, &he) {
		assert.Equal(t, http.StatusTooManyRequests, he.Code)
	}

	// same ip, different user
	assert.Nil(t, request(bob))
}
