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
	"math"
	"net/http"
	"time"

	"github.com/l3montree-dev/sdm/config"
	"github.com/l3montree-dev/sdm/shared"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// ArchiveRateLimiter is the limiter shared by all archive routes.
type ArchiveRateLimiter echo.MiddlewareFunc

// downloadBurst is twice the rounded up rate and never zero.
func downloadBurst(r float64) int {
	return max(int(math.Ceil(r))*2, 1)
}

// DownloadRateLimiter limits the archive endpoints per user. Archives are the
// expensive requests, single files and bundle management are not limited.
func DownloadRateLimiter(cfg config.ServerConfig) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(cfg.DownloadRateLimit),
		Burst:     downloadBurst(cfg.DownloadRateLimit),
		ExpiresIn: 3 * time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			if session, ok := ctx.Get("session").(shared.AuthSession); ok && session.GetUserID() != "" {
				return session.GetUserID(), nil
			}
			return ctx.RealIP(), nil
		},
		DenyHandler: func(ctx echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many archive requests, try again later")
		},
	})
}
