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
	"errors"
	"net/http"

	"github.com/l3montree-dev/sdm/shared"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps the service error taxonomy to http errors. Messages of
// storage, io and internal errors are not exposed to the client.
func toHTTPError(err error) error {
	if err == nil {
		return nil
	}

	var validationErr *shared.ValidationError
	if errors.As(err, &validationErr) {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{
			"message": validationErr.Message,
			"errors":  validationErr.Fields,
		}).WithInternal(err)
	}

	var notFoundErr *shared.NotFoundError
	if errors.As(err, &notFoundErr) {
		return echo.NewHTTPError(http.StatusNotFound, notFoundErr.Message).WithInternal(err)
	}

	var authorizationErr *shared.AuthorizationError
	if errors.As(err, &authorizationErr) {
		return echo.NewHTTPError(http.StatusForbidden, authorizationErr.Message).WithInternal(err)
	}

	if errors.Is(err, context.Canceled) {
		// the client is gone, the status code is only visible in the logs
		return echo.NewHTTPError(http.StatusRequestTimeout, "request canceled").WithInternal(err)
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").WithInternal(err)
}

func bindAndValidate(ctx shared.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not bind request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return toHTTPError(shared.ValidationErrorFromValidator(err))
	}
	return nil
}
