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

package main

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/l3montree-dev/sdm/archive"
	"github.com/l3montree-dev/sdm/auth"
	"github.com/l3montree-dev/sdm/cmd/sdm/api"
	"github.com/l3montree-dev/sdm/config"
	"github.com/l3montree-dev/sdm/controllers"
	"github.com/l3montree-dev/sdm/daemons"
	"github.com/l3montree-dev/sdm/database"
	"github.com/l3montree-dev/sdm/database/repositories"
	"github.com/l3montree-dev/sdm/router"
	"github.com/l3montree-dev/sdm/services"
	"github.com/l3montree-dev/sdm/shared"
	"github.com/l3montree-dev/sdm/storage"
	"go.uber.org/fx"

	_ "github.com/lib/pq"
)

var release string // Will be filled at build time

func main() {
	shared.LoadConfig() // nolint: errcheck
	shared.InitLogger()

	if os.Getenv("ERROR_TRACKING_DSN") != "" {
		initSentry()

		// Catch panics
		defer func() {
			if err := recover(); err != nil {
				sentry.CurrentHub().Recover(err)
				// Wait for events to be send to server
				sentry.Flush(time.Second * 5)
			}
		}()
	}

	archiveConfig, err := config.ArchiveConfigFromEnv()
	if err != nil {
		slog.Error("invalid archive configuration", "err", err)
		panic(errors.New("Failed to load archive configuration"))
	}

	db, err := database.DatabaseFactory()
	if err != nil {
		slog.Error(err.Error())
		panic(errors.New("Failed to setup database connection"))
	}

	if os.Getenv("DISABLE_AUTOMIGRATE") != "true" {
		slog.Info("running database migrations...")
		if err := database.RunMigrationsWithDB(db); err != nil {
			slog.Error("failed to run database migrations", "error", err)
			panic(errors.New("Failed to run database migrations"))
		}
	} else {
		slog.Info("automatic migrations disabled via DISABLE_AUTOMIGRATE=true")
	}

	fx.New(
		fx.Supply(db),
		fx.Supply(archiveConfig),
		fx.Supply(config.ServerConfigFromEnv()),
		fx.Provide(api.NewServer),
		repositories.Module,
		storage.Module,
		archive.Module,
		services.ServiceModule,
		controllers.ControllerModule,
		router.RouterModule,
		auth.Module,
		daemons.Module,

		// we need to invoke all routers to register their routes
		fx.Invoke(func(SessionRouter router.SessionRouter) {}),
		fx.Invoke(func(SoftwareRouter router.SoftwareRouter) {}),
		fx.Invoke(func(DownloadRouter router.DownloadRouter) {}),
		fx.Invoke(func(BundleRouter router.BundleRouter) {}),
	).Run()
}

func initSentry() {
	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "dev"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         os.Getenv("ERROR_TRACKING_DSN"),
		Environment: environment,
		Release:     release,

		Debug:            environment == "dev",
		AttachStacktrace: true,
		SendDefaultPII:   false,
	})
	if err != nil {
		slog.Error("Failed to init logger", "err", err)
	}
}
