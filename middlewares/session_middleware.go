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
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/l3montree-dev/sdm/auth"
	"github.com/l3montree-dev/sdm/shared"
	"github.com/labstack/echo/v4"
)

const kratosSessionCookie = "ory_kratos_session"

func getCookie(name string, cookies []*http.Cookie) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func cookieAuth(ctx context.Context, oryAPIClient shared.AdminClient, oryKratosSessionCookie string) (string, error) {
	// check if we have a session
	unescaped, err := url.QueryUnescape(oryKratosSessionCookie)
	if err != nil {
		return "", err
	}

	identity, err := oryAPIClient.GetIdentityFromCookie(ctx, unescaped)
	if err != nil {
		return "", err
	}

	return identity.Id, nil
}

func sessionToken(req *http.Request) string {
	if token := req.Header.Get("X-Session-Token"); token != "" {
		return token
	}
	if bearer, ok := strings.CutPrefix(req.Header.Get(echo.HeaderAuthorization), "Bearer "); ok {
		return strings.TrimSpace(bearer)
	}
	return ""
}

// SessionMiddleware resolves the kratos session of the request. Requests
// without a valid session continue with auth.NoSession.
func SessionMiddleware(oryAPIClient shared.AdminClient) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if oryKratosSessionCookie := getCookie(kratosSessionCookie, ctx.Cookies()); oryKratosSessionCookie != nil {
				userID, err := cookieAuth(ctx.Request().Context(), oryAPIClient, oryKratosSessionCookie.String())
				if err != nil {
					slog.Warn("could not get user ID from cookie", "err", err)
					shared.SetSession(ctx, auth.NoSession)
					return next(ctx)
				}
				shared.SetSession(ctx, auth.NewSession(userID))
				return next(ctx)
			}

			// install scripts authenticate with a session token
			if token := sessionToken(ctx.Request()); token != "" {
				identity, err := oryAPIClient.GetIdentityFromSessionToken(ctx.Request().Context(), token)
				if err != nil {
					slog.Warn("could not get user ID from session token", "err", err)
					shared.SetSession(ctx, auth.NoSession)
					return next(ctx)
				}
				shared.SetSession(ctx, auth.NewSession(identity.Id))
				return next(ctx)
			}

			shared.SetSession(ctx, auth.NoSession)
			return next(ctx)
		}
	}
}

// RequireSession rejects requests without an authenticated user.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			session, ok := ctx.Get("session").(shared.AuthSession)
			if !ok || session.GetUserID() == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "no session")
			}
			return next(ctx)
		}
	}
}
