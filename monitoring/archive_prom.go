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

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ArchiveBuildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sdm_archive_builds_total",
	Help: "The total number of started archive builds by strategy",
}, []string{"strategy"})

var ArchiveBuildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "sdm_archive_build_duration_seconds",
	Help:    "Duration from the start of an archive build until the last byte was written",
	Buckets: []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 600, 1800},
}, []string{"strategy"})

var ArchiveEntriesSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "sdm_archive_entries_skipped_total",
	Help: "The total number of archive entries which could not be opened and were left out",
})

var TempArtifactsSweptTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "sdm_temp_artifacts_swept_total",
	Help: "The total number of expired scratch files removed by the sweeper",
})

var DownloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sdm_downloads_total",
	Help: "The total number of served downloads by kind",
}, []string{"kind"})
