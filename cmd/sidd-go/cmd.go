// Copyright 2019, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"

	cli "gopkg.in/urfave/cli.v1"
)

const appVersion = "0.1.0"

var commands = cli.Commands{
	cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Launch the sidd-go catalog webserver",
		Action:  serveAction,
	},
	cli.Command{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "Print the version number of the sidd-go CLI",
		Action:  versionAction,
	},
	cli.Command{
		Name:    "ingest",
		Aliases: []string{"i"},
		Usage:   "Update the database with the latest metadata documents",
		Action:  ingestAction,
	},
	cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Update database schema",
		Action:  migrateDatabaseAction,
	},
	cli.Command{
		Name:   "validate",
		Usage:  "Validate metadata documents and report missing required fields",
		Action: validateAction,
	},
	cli.Command{
		Name:   "convert",
		Usage:  "Rewrite metadata documents in canonical serialized form",
		Action: convertAction,
	},
	cli.Command{
		Name:   "backfill",
		Usage:  "Re-parse indexed documents to populate missing chip corner columns",
		Action: backfillCornersAction,
	},
}

func createCliApp() (app *cli.App) {
	app = cli.NewApp()
	app.Name = "sidd-go"
	app.Usage = "Launch a sidd-go process"
	app.Version = appVersion
	app.Commands = commands
	return
}

func versionAction(*cli.Context) {
	fmt.Println("sidd-go version", appVersion)
}
