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
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/l3montree-dev/sdm/database"
	"github.com/l3montree-dev/sdm/database/models"
	"github.com/l3montree-dev/sdm/database/repositories"
	"github.com/l3montree-dev/sdm/services"
	"github.com/l3montree-dev/sdm/shared"
	"github.com/spf13/cobra"
)

func NewBundlesCommand() *cobra.Command {
	bundles := &cobra.Command{
		Use:   "bundles",
		Short: "Inspect bundles",
	}

	bundles.AddCommand(newBundlesListCommand())
	bundles.AddCommand(newBundlesScriptCommand())
	return bundles
}

func newBundleService() (shared.BundleService, error) {
	db, err := database.DatabaseFactory()
	if err != nil {
		return nil, err
	}
	softwareService := services.NewSoftwareService(repositories.NewSoftwareRepository(db))
	return services.NewBundleService(repositories.NewBundleRepository(db), softwareService), nil
}

func printBundles(w io.Writer, bundles []models.Bundle) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Default", "Name", "ID", "Items", "Created"})
	for _, bundle := range bundles {
		marker := ""
		if bundle.IsDefault {
			marker = "*"
		}
		tw.AppendRow(table.Row{marker, bundle.Name, bundle.ID.String(), len(bundle.Items), bundle.CreatedAt.Format(time.DateTime)})
	}
	tw.SetStyle(table.StyleLight)
	tw.Render()
}

func newBundlesListCommand() *cobra.Command {
	list := &cobra.Command{
		Use:   "list",
		Short: "Lists the bundles of an owner",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, _ := cmd.Flags().GetString("owner")

			bundleService, err := newBundleService()
			if err != nil {
				return err
			}

			bundles, err := bundleService.ListBundles(owner)
			if err != nil {
				return err
			}

			printBundles(cmd.OutOrStdout(), bundles)
			return nil
		},
	}

	list.Flags().String("owner", "", "the identity id of the owner")
	list.MarkFlagRequired("owner") // nolint: errcheck
	return list
}

func newBundlesScriptCommand() *cobra.Command {
	script := &cobra.Command{
		Use:   "script",
		Short: "Prints the install script of a bundle",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, _ := cmd.Flags().GetString("owner")
			rawID, _ := cmd.Flags().GetString("bundle")
			format, _ := cmd.Flags().GetString("format")
			apiURL, _ := cmd.Flags().GetString("api-url")

			bundleID, err := uuid.Parse(rawID)
			if err != nil {
				return fmt.Errorf("invalid bundle id: %w", err)
			}
			flavor, err := shared.ParseScriptFlavor(format)
			if err != nil {
				return err
			}

			bundleService, err := newBundleService()
			if err != nil {
				return err
			}
			bundle, err := bundleService.GetBundle(owner, bundleID)
			if err != nil {
				return err
			}

			software := bundle.OrderedSoftware()
			if len(software) == 0 {
				return shared.NewNotFoundError("no software in bundle", nil)
			}

			content, err := services.NewScriptExporter().Render(bundle.Name, software, services.SoftwareURLTemplate(apiURL), time.Now(), flavor)
			if err != nil {
				return err
			}

			_, err = io.WriteString(cmd.OutOrStdout(), content)
			return err
		},
	}

	script.Flags().String("owner", "", "the identity id of the owner")
	script.Flags().String("bundle", "", "the id of the bundle")
	script.Flags().String("format", string(shared.ScriptFlavorPowerShell), "ps1 or sh")
	script.Flags().String("api-url", "http://localhost:8080", "the public url of the api, used inside the script")
	script.MarkFlagRequired("owner")  // nolint: errcheck
	script.MarkFlagRequired("bundle") // nolint: errcheck
	return script
}
