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

package commands

import (
	"fmt"

	"github.com/l3montree-dev/sdm/config"
	"github.com/l3montree-dev/sdm/storage"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func NewSweepCommand() *cobra.Command {
	defaults := config.DefaultArchiveConfig()

	sweep := &cobra.Command{
		Use:   "sweep",
		Short: "Removes expired scratch archives",
		Long:  `Removes every file in the scratch directory which is older than --max-age. The server does this on its own, the command is meant for cron jobs on instances which are not running.`,
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("scratch-dir")
			maxAge, _ := cmd.Flags().GetDuration("max-age")
			if maxAge <= 0 {
				return fmt.Errorf("max-age must be positive")
			}

			removed := storage.NewTempArtifactManager(afero.NewOsFs(), dir).Sweep(maxAge)
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired scratch file(s) from %s\n", removed, dir)
			return nil
		},
	}

	sweep.Flags().String("scratch-dir", defaults.ScratchDir, "the scratch directory of the archive builder")
	sweep.Flags().Duration("max-age", defaults.TempRetention, "files older than this are removed")
	return sweep
}
