// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mustafaazad03/rbac-ui/internal/engine/bootstrap"
	"github.com/mustafaazad03/rbac-ui/internal/engine/model"
	"github.com/mustafaazad03/rbac-ui/internal/engine/repo"
	"github.com/mustafaazad03/rbac-ui/internal/engine/seed"
	"github.com/mustafaazad03/rbac-ui/pkg/version"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "rbac",
	Short: "rbac is an admin service for employees, roles, teams and permissions",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := bootstrap.Bootstrap(configFile, initApp)
		if err != nil {
			return err
		}
		bootstrap.Run(app, cleanup)
		return nil
	},
}

var (
	exportFormat string
	exportOut    string
	exportToSink bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the seeded employee list",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := bootstrap.Bootstrap(configFile, initApp)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if exportToSink {
			location, err := app.Services.Export.ExportTo(ctx, exportFormat)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), location)
			return nil
		}

		result, err := app.Services.Export.Export(ctx, exportFormat)
		if err != nil {
			return err
		}
		if exportOut == "" || exportOut == "-" {
			_, err = cmd.OutOrStdout().Write(result.Data)
			return err
		}
		return os.WriteFile(exportOut, result.Data, 0o644)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed file tools",
}

var seedManagerMode string

var seedCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a seed file without starting the server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := model.ParseManagerMode(seedManagerMode)
		if err != nil {
			return err
		}
		doc, err := seed.ParseFile(args[0])
		if err != nil {
			return err
		}
		if err := seed.Check(doc, repo.Options{ManagerMode: mode}); err != nil {
			return err
		}
		snap := doc.Snapshot()
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d employees, %d roles, %d teams, %d permissions\n",
			len(snap.Employees), len(snap.Roles), len(snap.Teams), len(snap.Permissions))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "conf.d/config.toml", "conf file path, e.g. --conf ./conf.d/config.toml")

	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "export format: json or xlsx")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file, stdout when empty")
	exportCmd.Flags().BoolVar(&exportToSink, "sink", false, "write to the configured storage sink")

	seedCheckCmd.Flags().StringVar(&seedManagerMode, "manager-mode", string(model.ManagerLive), "default manager mode: live or snapshot")
	seedCmd.AddCommand(seedCheckCmd)

	rootCmd.AddCommand(serveCmd, exportCmd, seedCmd, version.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
