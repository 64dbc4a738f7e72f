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

package archive

import (
	"github.com/l3montree-dev/sdm/config"
	"github.com/l3montree-dev/sdm/shared"
)

// Policy picks the strategy for a whole archive. It runs once per request.
type Policy func(entries []shared.ArchiveEntry, cfg config.ArchiveConfig) shared.ArchiveStrategy

// DefaultPolicy streams if every entry has a known size and the total stays
// below the streaming threshold. Everything else is buffered.
func DefaultPolicy(entries []shared.ArchiveEntry, cfg config.ArchiveConfig) shared.ArchiveStrategy {
	var total int64
	for _, e := range entries {
		if e.DeclaredSize < 0 {
			return shared.ArchiveStrategyBuffered
		}
		total += e.DeclaredSize
	}
	if total < cfg.StreamingThresholdBytes {
		return shared.ArchiveStrategyStreamed
	}
	return shared.ArchiveStrategyBuffered
}

// AlwaysPolicy ignores the entries and always returns strategy.
func AlwaysPolicy(strategy shared.ArchiveStrategy) Policy {
	return func([]shared.ArchiveEntry, config.ArchiveConfig) shared.ArchiveStrategy {
		return strategy
	}
}

// estimatedSize sums up the known sizes. Unknown sizes count as zero.
func estimatedSize(entries []shared.ArchiveEntry) int64 {
	var total int64
	for _, e := range entries {
		if e.DeclaredSize > 0 {
			total += e.DeclaredSize
		}
	}
	return total
}
