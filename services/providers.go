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

package services

import (
	"github.com/l3montree-dev/sdm/shared"
	"go.uber.org/fx"
)

var ServiceModule = fx.Options(
	fx.Provide(fx.Annotate(NewSoftwareService, fx.As(new(shared.SoftwareService)))),
	fx.Provide(fx.Annotate(NewBundleService, fx.As(new(shared.BundleService)))),
	fx.Provide(fx.Annotate(NewScriptExporter, fx.As(new(shared.ScriptExporter)))),
	fx.Provide(fx.Annotate(NewDownloadService, fx.As(new(shared.DownloadService)))),
)
