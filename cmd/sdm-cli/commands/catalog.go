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
	"os"

	"github.com/l3montree-dev/sdm/database"
	"github.com/l3montree-dev/sdm/database/repositories"
	"github.com/l3montree-dev/sdm/services"
	"github.com/spf13/cobra"
)

func NewCatalogCommand() *cobra.Command {
	catalog := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the software catalog",
	}

	catalog.AddCommand(newCatalogImportCommand())
	return catalog
}

func newCatalogImportCommand() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Imports a yaml catalog, entries are matched by file name",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			db, err := database.DatabaseFactory()
			if err != nil {
				return err
			}

			result, err := services.ImportCatalog(repositories.NewSoftwareRepository(db), f)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported catalog: %d created, %d updated\n", result.Created, result.Updated)
			return nil
		},
	}

	importCmd.Flags().String("file", "catalog.yaml", "path to the catalog file")
	return importCmd
}
