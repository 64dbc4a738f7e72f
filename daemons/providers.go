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

package daemons

import (
	"log/slog"
	"sync"
	"time"

	"github.com/l3montree-dev/sdm/config"
	"github.com/l3montree-dev/sdm/monitoring"
	"github.com/l3montree-dev/sdm/shared"
	"go.uber.org/fx"
)

// DaemonRunner periodically sweeps expired scratch files. It complements the
// sweep which runs at the start of every archive build, so scratch files are
// removed even if no archives are requested for a while.
type DaemonRunner struct {
	tempArtifactManager shared.TempArtifactManager
	retention           time.Duration
	interval            time.Duration

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// sweepInterval keeps files from outliving the retention by more than a quarter of it.
func sweepInterval(retention time.Duration) time.Duration {
	return max(retention/4, time.Minute)
}

func NewDaemonRunner(tempArtifactManager shared.TempArtifactManager, cfg config.ArchiveConfig) *DaemonRunner {
	return &DaemonRunner{
		tempArtifactManager: tempArtifactManager,
		retention:           cfg.TempRetention,
		interval:            sweepInterval(cfg.TempRetention),
		stop:                make(chan struct{}),
		done:                make(chan struct{}),
	}
}

// Start initiates the background sweep
func (runner *DaemonRunner) Start() {
	go func() {
		defer close(runner.done)
		runner.tick()
		ticker := time.NewTicker(runner.interval)
		defer ticker.Stop()
		for {
			select {
			case <-runner.stop:
				return
			case <-ticker.C:
				runner.tick()
			}
		}
	}()
}

// Stop ends the background sweep and waits for a running sweep to finish.
func (runner *DaemonRunner) Stop() {
	runner.stopOnce.Do(func() {
		close(runner.stop)
	})
	<-runner.done
}

func (runner *DaemonRunner) tick() {
	defer func() {
		if r := recover(); r != nil {
			monitoring.RecoverAndAlert("panic in scratch sweeper", r)
		}
	}()

	start := time.Now()
	removed := runner.tempArtifactManager.Sweep(runner.retention)
	slog.Debug("swept scratch directory", "removed", removed, "duration", time.Since(start))
}

var _ shared.DaemonRunner = (*DaemonRunner)(nil)

var Module = fx.Module("daemons",
	fx.Provide(fx.Annotate(NewDaemonRunner, fx.As(new(shared.DaemonRunner)))),
	fx.Invoke(func(lc fx.Lifecycle, runner shared.DaemonRunner) {
		lc.Append(fx.StartStopHook(runner.Start, runner.Stop))
	}),
)
