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

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/l3montree-dev/sdm/utils"
)

// filled at build time
var (
	Version   = "dev"
	Commit    = "unknown"
	Branch    = "unknown"
	BuildDate = "unknown"
)

// ArchiveConfig controls how archives are assembled.
//
// Archives whose entries all have a known size summing up to less than
// StreamingThresholdBytes are streamed straight to the client. Everything else
// is written to a scratch file in ScratchDir first. Inside such a scratch
// archive, entries of at least LargeEntryThresholdBytes are stored without
// compression. Scratch files older than TempRetention are removed by the sweeper.
type ArchiveConfig struct {
	StreamingThresholdBytes  int64
	LargeEntryThresholdBytes int64
	TempRetention            time.Duration
	ScratchDir               string
	// ProductName prefixes generated archive names.
	ProductName string
	// StatConcurrency limits parallel blob availability checks.
	StatConcurrency int
}

func DefaultArchiveConfig() ArchiveConfig {
	return ArchiveConfig{
		StreamingThresholdBytes:  512 * humanize.MiByte,
		LargeEntryThresholdBytes: 100 * humanize.MiByte,
		TempRetention:            time.Hour,
		ScratchDir:               filepath.Join(os.TempDir(), "sdm-archives"),
		ProductName:              "SDM",
		StatConcurrency:          8,
	}
}

func (c ArchiveConfig) Validate() error {
	if c.StreamingThresholdBytes < 0 {
		return fmt.Errorf("streaming threshold must not be negative")
	}
	if c.LargeEntryThresholdBytes <= 0 {
		return fmt.Errorf("large entry threshold must be positive")
	}
	if c.TempRetention <= 0 {
		return fmt.Errorf("temp retention must be positive")
	}
	if c.ScratchDir == "" {
		return fmt.Errorf("scratch dir must be set")
	}
	if c.ProductName == "" {
		return fmt.Errorf("product name must be set")
	}
	if c.StatConcurrency <= 0 {
		return fmt.Errorf("stat concurrency must be positive")
	}
	return nil
}

// ArchiveConfigFromEnv reads the archive configuration from the environment.
// Sizes are human readable ("512MiB", "1 GB"), durations use time.ParseDuration.
//
// Environment variables:
// - ARCHIVE_STREAMING_THRESHOLD (default: 512MiB)
// - ARCHIVE_LARGE_ENTRY_THRESHOLD (default: 100MiB)
// - ARCHIVE_TEMP_RETENTION (default: 1h)
// - SCRATCH_DIR (default: <tmp>/sdm-archives)
// - PRODUCT_NAME (default: SDM)
func ArchiveConfigFromEnv() (ArchiveConfig, error) {
	cfg := DefaultArchiveConfig()

	if v := os.Getenv("ARCHIVE_STREAMING_THRESHOLD"); v != "" {
		b, err := humanize.ParseBytes(v)
		if err != nil {
			return cfg, fmt.Errorf("could not parse ARCHIVE_STREAMING_THRESHOLD: %w", err)
		}
		cfg.StreamingThresholdBytes = int64(b)
	}

	if v := os.Getenv("ARCHIVE_LARGE_ENTRY_THRESHOLD"); v != "" {
		b, err := humanize.ParseBytes(v)
		if err != nil {
			return cfg, fmt.Errorf("could not parse ARCHIVE_LARGE_ENTRY_THRESHOLD: %w", err)
		}
		cfg.LargeEntryThresholdBytes = int64(b)
	}

	if v := os.Getenv("ARCHIVE_TEMP_RETENTION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("could not parse ARCHIVE_TEMP_RETENTION: %w", err)
		}
		cfg.TempRetention = d
	}

	cfg.ScratchDir = utils.GetEnvOrDefault("SCRATCH_DIR", cfg.ScratchDir)
	cfg.ProductName = utils.GetEnvOrDefault("PRODUCT_NAME", cfg.ProductName)

	return cfg, cfg.Validate()
}

// ServerConfig holds the settings of the HTTP surface.
type ServerConfig struct {
	Port string
	// APIURL is the public base url used inside generated install scripts.
	APIURL       string
	FrontendURLs []string
	OryKratosURL string
	BlobRoot     string
	// DownloadRateLimit is the number of archive requests per second and client.
	DownloadRateLimit float64
}

func ServerConfigFromEnv() ServerConfig {
	cfg := ServerConfig{
		Port:              utils.GetEnvOrDefault("PORT", "8080"),
		APIURL:            utils.GetEnvOrDefault("API_URL", "http://localhost:8080"),
		FrontendURLs:      utils.SplitCommaSeparated(utils.GetEnvOrDefault("FRONTEND_URL", "http://localhost:3000")),
		OryKratosURL:      utils.GetEnvOrDefault("ORY_KRATOS_PUBLIC", "http://localhost:4433"),
		BlobRoot:          utils.GetEnvOrDefault("BLOB_ROOT", filepath.Join("storage", "downloads")),
		DownloadRateLimit: 5,
	}

	if v := os.Getenv("DOWNLOAD_RATE_LIMIT"); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil && val > 0 {
			cfg.DownloadRateLimit = val
		}
	}

	return cfg
}
